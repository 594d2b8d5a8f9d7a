// Command blockdoku plays Blockdoku in the terminal and serves it to remote
// players.
//
// Subcommands:
//  1. "play" (default) - interactive game in the terminal
//  2. "serve" - HTTP server exposing the REST API, WebSocket observers and an /mcp endpoint
//  3. "mcp" - MCP stdio server, reusing a running API or starting an internal one
//  4. "simulate" - let the greedy autoplayer play seeded games
//  5. "scores" - print the leaderboard
//  6. "env" - list the environment variables read as settings
//
// Settings come from an optional YAML file and the environment (a .env file
// is loaded first); flags override both.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/blockdoku/game/autoplay"
	"github.com/wricardo/blockdoku/game/config"
	"github.com/wricardo/blockdoku/game/engine"
	"github.com/wricardo/blockdoku/game/scoreboard"
	"github.com/wricardo/blockdoku/game/service"
	"github.com/wricardo/blockdoku/game/session"
	"github.com/wricardo/blockdoku/logging"
	"github.com/wricardo/blockdoku/settings"
	"github.com/wricardo/blockdoku/ui/terminal"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Blockdoku"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Command output goes to out.
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "blockdoku",
		Usage:     "9x9 block placement puzzle",
		Version:   Version,
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "settings", Usage: "YAML settings file", Sources: cli.EnvVars("BLOCKDOKU_SETTINGS")},
			&cli.StringFlag{Name: "config-dir", Usage: "directory containing rulesets"},
			&cli.StringFlag{Name: "ruleset", Aliases: []string{"r"}, Usage: "ruleset to play"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed, 0 seeds from the clock"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-file", Usage: "append logs to this file"},
			&cli.StringFlag{Name: "redis-addr", Usage: "Redis address for the scoreboard (memory when empty)"},
		},
		Action: runPlay,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play in the terminal (default)",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "player", Usage: "record the final score under this name"}},
				Action: runPlay,
			},
			serveCommand(),
			mcpCommand(),
			{
				Name:  "simulate",
				Usage: "let the greedy autoplayer play",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "games", Value: 1, Usage: "number of games"},
					&cli.IntFlag{Name: "turns", Value: autoplay.DefaultMaxTurns, Usage: "maximum placements per game"},
					&cli.StringFlag{Name: "player", Usage: "record each final score under this name"},
				},
				Action: runSimulate,
			},
			{
				Name:  "scores",
				Usage: "print the leaderboard",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: scoreboard.DefaultLimit, Usage: "number of entries"},
				},
				Action: runScores,
			},
			{
				Name:  "env",
				Usage: "list the environment variables read as settings",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return settings.WriteUsage(cmd.Root().Writer)
				},
			},
		},
	}
}

// loadSettings reads the settings file and environment, then applies flags that were set
func loadSettings(cmd *cli.Command) (*settings.Settings, error) {
	s, err := settings.Load(cmd.String("settings"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("config-dir") {
		s.ConfigDir = cmd.String("config-dir")
	}
	if cmd.IsSet("ruleset") {
		s.Ruleset = cmd.String("ruleset")
	}
	if cmd.IsSet("seed") {
		s.Seed = cmd.Int64("seed")
	}
	if cmd.IsSet("log-level") {
		s.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-file") {
		s.Log.File = cmd.String("log-file")
	}
	if cmd.IsSet("redis-addr") {
		s.Redis.Addr = cmd.String("redis-addr")
	}
	if cmd.IsSet("host") {
		s.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		s.Port = cmd.Int("port")
	}
	if cmd.IsSet("ngrok") {
		s.Ngrok.Enabled = cmd.Bool("ngrok")
	}
	if cmd.IsSet("ngrok-auth") {
		s.Ngrok.AuthToken = cmd.String("ngrok-auth")
	}
	if cmd.IsSet("ngrok-domain") {
		s.Ngrok.Domain = cmd.String("ngrok-domain")
	}

	return s, s.Validate()
}

// setup loads settings and builds the logger. console is false while the
// terminal UI owns the screen.
func setup(cmd *cli.Command, console bool) (*settings.Settings, *zap.Logger, func(), error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, closeLog, err := logging.New(s.LogOptions(console))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logging.SetGlobal(logger)

	return s, logger, func() { closeLog() }, nil
}

// openScoreboard returns the Redis store when an address is configured, else a memory store
func openScoreboard(ctx context.Context, s *settings.Settings, logger *zap.Logger) (scoreboard.Store, func(), error) {
	if s.Redis.Addr == "" {
		return scoreboard.NewMemoryStore(), func() {}, nil
	}

	store, err := scoreboard.Dial(ctx, s.Redis.Addr, s.Redis.Password, s.Redis.DB, s.Redis.Prefix)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("scoreboard_redis", zap.String("addr", s.Redis.Addr), zap.String("prefix", s.Redis.Prefix))

	return store, func() {
		if err := store.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			logger.Warn("scoreboard_close", zap.Error(err))
		}
	}, nil
}

// initializeServices wires the session and config managers into a game service
func initializeServices(s *settings.Settings, store scoreboard.Store, logger *zap.Logger) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(s.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if s.Ruleset != "" && s.Ruleset != config.DefaultName {
		if err := configManager.SetDefault(s.Ruleset); err != nil {
			return nil, nil, fmt.Errorf("failed to select ruleset %s: %w", s.Ruleset, err)
		}
	}

	sourceFunc := session.SourceFunc(session.TimeSeeded)
	if s.Seed != 0 {
		sourceFunc = session.FixedSeed(s.Seed)
	}
	sessionManager := session.NewManager(session.WithSourceFunc(sourceFunc))

	gameService := service.NewGameService(sessionManager, configManager,
		service.WithScoreboard(store),
		service.WithLogger(logger),
	)
	return gameService, sessionManager, nil
}

// loadRuleset returns the configured ruleset for single-player commands
func loadRuleset(s *settings.Settings) (*engine.GameConfig, error) {
	configManager, err := config.NewManager(s.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if s.Ruleset == "" || s.Ruleset == config.DefaultName {
		return configManager.GetDefault(), nil
	}
	return configManager.LoadConfig(s.Ruleset)
}

func recordScore(ctx context.Context, store scoreboard.Store, player string, score uint64, ruleset string) (scoreboard.Entry, error) {
	return store.Record(ctx, scoreboard.Entry{Player: player, Score: score, ConfigName: ruleset})
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	s, logger, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	ruleset, err := loadRuleset(s)
	if err != nil {
		return err
	}
	eng, err := engine.NewEngine(ruleset, engine.NewRandomSource(s.Seed))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}

	logger.Info("game_start", zap.String("ruleset", ruleset.Name), zap.Int64("seed", s.Seed))
	score, err := terminal.NewApp(screen, eng, logger).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// the terminal is restored at this point
	out := cmd.Root().Writer
	farewell := ruleset.Messages.Farewell
	if farewell == "" {
		farewell = engine.DefaultGameConfig().Messages.Farewell
	}
	fmt.Fprintf(out, farewell+"\n", score)

	if player := cmd.String("player"); player != "" {
		store, closeStore, err := openScoreboard(ctx, s, logger)
		if err != nil {
			return err
		}
		defer closeStore()
		if _, err := recordScore(ctx, store, player, score, s.Ruleset); err != nil {
			return fmt.Errorf("failed to record score: %w", err)
		}
	}
	return nil
}

func runSimulate(ctx context.Context, cmd *cli.Command) error {
	s, logger, closeLog, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer closeLog()

	ruleset, err := loadRuleset(s)
	if err != nil {
		return err
	}

	var store scoreboard.Store
	player := cmd.String("player")
	if player != "" {
		var closeStore func()
		store, closeStore, err = openScoreboard(ctx, s, logger)
		if err != nil {
			return err
		}
		defer closeStore()
	}

	games := max(cmd.Int("games"), 1)
	out := cmd.Root().Writer
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tSEED\tTURNS\tREGIONS\tSCORE\tEND")

	var total uint64
	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		// a zero seed stays time-seeded for every game
		seed := s.Seed
		if seed != 0 {
			seed += int64(i)
		}
		eng, err := engine.NewEngine(ruleset, engine.NewRandomSource(seed))
		if err != nil {
			return err
		}

		res := autoplay.Play(eng, autoplay.Greedy{}, cmd.Int("turns"), func(turn autoplay.Turn) {
			logger.Debug("autoplay_turn",
				zap.Int("game", i+1),
				zap.Int("turn", turn.Number),
				zap.Int("x", turn.Target.X),
				zap.Int("y", turn.Target.Y),
				zap.Int("regions", turn.Cleared.Regions()),
				zap.Uint64("score", turn.Score))
		})
		total += res.Score

		end := "turn limit"
		if res.Stuck {
			end = "stuck"
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%s\n", i+1, seed, res.Turns, res.Regions, res.Score, end)

		if store != nil {
			if _, err := recordScore(ctx, store, player, res.Score, s.Ruleset); err != nil {
				return fmt.Errorf("failed to record score: %w", err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Average score over %d game(s): %.1f\n", games, float64(total)/float64(games))
	return nil
}

func runScores(ctx context.Context, cmd *cli.Command) error {
	s, logger, closeLog, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer closeLog()

	store, closeStore, err := openScoreboard(ctx, s, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	entries, err := store.Top(ctx, cmd.Int("limit"))
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tPLAYER\tSCORE\tRULESET\tRECORDED")
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", i+1, e.Player, e.Score, e.ConfigName, e.RecordedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
