package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/blockdoku/game/engine"
)

const (
	CellWidth  = 5
	CellHeight = 3

	BoardWidth  = engine.BoardSize * CellWidth
	BoardHeight = engine.BoardSize * CellHeight

	// one status line under the board
	FrameHeight = BoardHeight + 1

	PieceGlyph = '⯀'
	TooSmall   = "terminal too small"
)

var cellRows = [CellHeight]string{"▛▀▀▀▜", "▌   ▐", "▙▄▄▄▟"}

var (
	OccupiedStyle = tcell.StyleDefault.Foreground(tcell.ColorNavy).Background(tcell.ColorBlue)
	EmptyStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorSilver)
	StatusStyle   = tcell.StyleDefault
)

// Renderer draws game snapshots. It only reads state.
type Renderer struct{}

// Origin returns the top-left screen cell of the centred board. ok is false
// when the screen cannot hold the board and the status line.
func (Renderer) Origin(width, height int) (x, y int, ok bool) {
	if width < BoardWidth || height < FrameHeight {
		return 0, 0, false
	}
	return (width - BoardWidth) / 2, (height - FrameHeight) / 2, true
}

// Draw clears the screen, paints the board, the piece and the status line, and shows it
func (r Renderer) Draw(s tcell.Screen, state engine.GameState, status string) {
	s.Clear()
	width, height := s.Size()

	x0, y0, ok := r.Origin(width, height)
	if !ok {
		drawText(s, 0, 0, TooSmall, StatusStyle)
		drawText(s, 0, 1, fmt.Sprintf("need %dx%d, have %dx%d", BoardWidth, FrameHeight, width, height), StatusStyle)
		s.Show()
		return
	}

	for y := 0; y < engine.BoardSize; y++ {
		for x := 0; x < engine.BoardSize; x++ {
			style := EmptyStyle
			if state.Board[y][x] {
				style = OccupiedStyle
			}
			for row, glyphs := range cellRows {
				drawText(s, x0+x*CellWidth, y0+y*CellHeight+row, glyphs, style)
			}
		}
	}

	pieceColor := tcell.ColorGreen
	if !state.Legal {
		pieceColor = tcell.ColorRed
	}
	for my := 0; my < engine.PieceSize; my++ {
		for mx := 0; mx < engine.PieceSize; mx++ {
			if !state.Piece.Mask[my][mx] {
				continue
			}
			bx, by := state.Piece.X+mx, state.Piece.Y+my
			_, bg, _ := EmptyStyle.Decompose()
			if state.Board[by][bx] {
				_, bg, _ = OccupiedStyle.Decompose()
			}
			style := tcell.StyleDefault.Foreground(pieceColor).Background(bg)
			s.SetContent(x0+bx*CellWidth+CellWidth/2, y0+by*CellHeight+CellHeight/2, PieceGlyph, nil, style)
		}
	}

	line := fmt.Sprintf("Score: %d", state.Score)
	if status != "" {
		line += "  " + status
	}
	drawText(s, x0, y0+BoardHeight, line, StatusStyle)

	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
