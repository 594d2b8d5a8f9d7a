package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/blockdoku/game/engine"
)

// Intent is a decoded user action
type Intent int

const (
	None Intent = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Commit
	Quit
)

func (i Intent) String() string {
	switch i {
	case MoveUp:
		return "move_up"
	case MoveDown:
		return "move_down"
	case MoveLeft:
		return "move_left"
	case MoveRight:
		return "move_right"
	case Commit:
		return "commit"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// Direction maps a move intent to the engine direction
func (i Intent) Direction() (engine.Direction, bool) {
	switch i {
	case MoveUp:
		return engine.Up, true
	case MoveDown:
		return engine.Down, true
	case MoveLeft:
		return engine.Left, true
	case MoveRight:
		return engine.Right, true
	default:
		return 0, false
	}
}

// Decode turns a key event into an intent: arrows or w/a/s/d move, Enter
// commits, Esc or Ctrl-C quits. Everything else is None.
func Decode(ev *tcell.EventKey) Intent {
	switch ev.Key() {
	case tcell.KeyUp:
		return MoveUp
	case tcell.KeyDown:
		return MoveDown
	case tcell.KeyLeft:
		return MoveLeft
	case tcell.KeyRight:
		return MoveRight
	case tcell.KeyEnter:
		return Commit
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Quit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w':
			return MoveUp
		case 's':
			return MoveDown
		case 'a':
			return MoveLeft
		case 'd':
			return MoveRight
		}
	}
	return None
}
