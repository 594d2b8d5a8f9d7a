package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/wricardo/blockdoku/game/engine"
)

// App runs one game on one screen
type App struct {
	screen   tcell.Screen
	engine   engine.Engine
	renderer Renderer
	logger   *zap.Logger
	status   string
}

// NewApp creates an App. The screen is not touched until Run.
func NewApp(screen tcell.Screen, eng engine.Engine, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	status := ""
	if cfg := eng.GetConfig(); cfg != nil {
		status = cfg.Messages.Welcome
	}
	return &App{
		screen: screen,
		engine: eng,
		logger: logger,
		status: status,
	}
}

// Run takes over the terminal until the player quits or ctx is done and
// returns the final score. The screen is finalised on every exit path,
// including a panic, which is re-raised once the terminal is restored.
func (a *App) Run(ctx context.Context) (score uint64, err error) {
	if err := a.screen.Init(); err != nil {
		return 0, fmt.Errorf("init screen: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			a.screen.Fini()
			panic(r)
		}
		a.screen.Fini()
	}()

	a.screen.HideCursor()
	stop := context.AfterFunc(ctx, func() {
		a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	a.draw()
	for {
		switch ev := a.screen.PollEvent().(type) {
		case nil:
			// screen finalised underneath us
			return a.engine.GetScore(), nil
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return a.engine.GetScore(), err
			}
		case *tcell.EventResize:
			a.screen.Sync()
			a.draw()
		case *tcell.EventKey:
			intent := Decode(ev)
			if intent == Quit {
				a.logger.Info("game_quit", zap.Uint64("score", a.engine.GetScore()))
				return a.engine.GetScore(), nil
			}
			if intent == None {
				continue
			}
			a.Apply(intent)
			a.draw()
		}
	}
}

// Apply forwards one intent to the engine and updates the status line
func (a *App) Apply(intent Intent) {
	if dir, ok := intent.Direction(); ok {
		a.engine.Shift(dir)
		return
	}
	if intent != Commit {
		return
	}

	msgs := engine.Messages{}
	if cfg := a.engine.GetConfig(); cfg != nil {
		msgs = cfg.Messages
	}

	report, placed := a.engine.Place()
	switch {
	case !placed:
		a.status = msgs.Blocked
	case report.Regions() > 0:
		a.status = msgs.Placed
		if msgs.Cleared != "" {
			a.status = fmt.Sprintf(msgs.Cleared, report.Regions(), report.Awarded)
		}
	default:
		a.status = msgs.Placed
	}

	a.logger.Debug("piece_place",
		zap.Bool("placed", placed),
		zap.Int("regions", report.Regions()),
		zap.Uint64("score", a.engine.GetScore()),
	)
}

// Status returns the current status line text
func (a *App) Status() string {
	return a.status
}

func (a *App) draw() {
	a.renderer.Draw(a.screen, a.engine.GetState(), a.status)
}
