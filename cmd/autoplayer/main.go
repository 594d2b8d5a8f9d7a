// Command autoplayer plays a Blockdoku session on a running server through
// the REST API, using the greedy strategy. Every shift and placement goes
// over HTTP, so WebSocket observers of the session can watch it play.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/blockdoku/game/autoplay"
	"github.com/wricardo/blockdoku/game/engine"
	"github.com/wricardo/blockdoku/logging"
)

// ErrRefused is returned when the server rejects a placement the strategy
// expected to fit
var ErrRefused = errors.New("placement refused")

// Options controls a Run
type Options struct {
	Config   string
	Continue string // existing session ID
	Reset    bool
	MaxTurns int
	Delay    time.Duration
	Player   string
}

// Summary describes a finished run
type Summary struct {
	SessionID string
	Turns     int
	Regions   int
	Score     uint64
	Stuck     bool
}

func main() {
	cmd := &cli.Command{
		Name:  "autoplayer",
		Usage: "play a session on a running server with the greedy strategy",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "game server URL"},
			&cli.StringFlag{Name: "config", Usage: "ruleset to create the session with"},
			&cli.StringFlag{Name: "continue", Usage: "resume playing an existing session by ID"},
			&cli.BoolFlag{Name: "reset", Usage: "reset the session before playing"},
			&cli.IntFlag{Name: "max-turns", Value: autoplay.DefaultMaxTurns, Usage: "maximum placements"},
			&cli.DurationFlag{Name: "delay", Usage: "pause between requests"},
			&cli.StringFlag{Name: "player", Usage: "finish the session and record the score under this name"},
			&cli.BoolFlag{Name: "v", Usage: "log every placement"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			level := "info"
			if cmd.Bool("v") {
				level = "debug"
			}
			logger, closeLog, err := logging.New(logging.Options{Level: level, Console: true})
			if err != nil {
				return err
			}
			defer closeLog()

			logger.Info("connecting", zap.String("url", cmd.String("url")))
			summary, err := Run(ctx, NewClient(cmd.String("url")), Options{
				Config:   cmd.String("config"),
				Continue: cmd.String("continue"),
				Reset:    cmd.Bool("reset"),
				MaxTurns: cmd.Int("max-turns"),
				Delay:    cmd.Duration("delay"),
				Player:   cmd.String("player"),
			}, logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "Session %s: %d placements, %d regions cleared, score %d\n",
				summary.SessionID, summary.Turns, summary.Regions, summary.Score)
			return nil
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "autoplayer: %v\n", err)
		os.Exit(1)
	}
}

// Run plays until no placement fits, maxTurns placements are made or ctx is done
func Run(ctx context.Context, client *Client, opts Options, logger *zap.Logger) (Summary, error) {
	var state *engine.GameState
	var err error

	if opts.Continue != "" {
		state, err = client.Resume(ctx, opts.Continue)
		if err != nil {
			return Summary{}, err
		}
		logger.Info("session_resumed", zap.String("session", client.SessionID()), zap.Uint64("score", state.Score))
	} else {
		state, err = client.CreateSession(ctx, opts.Config)
		if err != nil {
			return Summary{}, err
		}
		logger.Info("session_created", zap.String("session", client.SessionID()), zap.String("config", state.ConfigName))
	}

	if opts.Reset {
		if state, err = client.Reset(ctx); err != nil {
			return Summary{}, err
		}
	}

	maxTurns := opts.MaxTurns
	if maxTurns <= 0 {
		maxTurns = autoplay.DefaultMaxTurns
	}

	summary := Summary{SessionID: client.SessionID(), Score: state.Score}
	strategy := autoplay.Greedy{}

	for summary.Turns < maxTurns {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		target, dirs, ok := strategy.Plan(*state)
		if !ok {
			summary.Stuck = true
			logger.Info("stuck", zap.Uint64("score", summary.Score))
			break
		}

		for _, dir := range dirs {
			if _, err := client.Shift(ctx, dir); err != nil {
				return summary, err
			}
			pause(ctx, opts.Delay)
		}

		result, err := client.Place(ctx)
		if err != nil {
			return summary, err
		}
		if !result.Placed {
			return summary, fmt.Errorf("%w at (%d,%d): %s", ErrRefused, target.X, target.Y, result.Message)
		}

		state = result.GameState
		summary.Turns++
		summary.Regions += result.Cleared.Regions()
		summary.Score = state.Score

		logger.Debug("placed",
			zap.Int("turn", summary.Turns),
			zap.Int("x", target.X),
			zap.Int("y", target.Y),
			zap.Int("regions", result.Cleared.Regions()),
			zap.Uint64("score", summary.Score))
		pause(ctx, opts.Delay)
	}

	if opts.Player != "" {
		entry, err := client.Finish(ctx, opts.Player)
		if err != nil {
			return summary, err
		}
		logger.Info("score_recorded", zap.String("player", entry.Player), zap.Uint64("score", entry.Score))
	}
	return summary, nil
}

func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
