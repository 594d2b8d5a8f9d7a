// Package autoplay drives an engine without a human: a strategy picks where
// the active piece should go and Play feeds the matching shifts and the
// placement through the engine's public operations.
package autoplay

import (
	"github.com/wricardo/blockdoku/game/engine"
)

// Strategy chooses a target offset for the active piece
type Strategy interface {
	// Plan returns the target offset and the shifts that reach it from the
	// piece's current offset. ok is false when the piece fits nowhere.
	Plan(state engine.GameState) (target engine.Position, dirs []engine.Direction, ok bool)
}

// Candidate is one legal offset and how it scores
type Candidate struct {
	Position   engine.Position
	Awarded    uint64
	Neighbours int
}

// better ranks by points, then contact with occupied cells. Equal candidates
// keep the earlier one, so scanning in (y, x) order prefers lower offsets.
func (c Candidate) better(o Candidate) bool {
	if c.Awarded != o.Awarded {
		return c.Awarded > o.Awarded
	}
	return c.Neighbours > o.Neighbours
}

// Greedy places each piece where it scores most right now
type Greedy struct{}

// Candidates lists every legal offset for the piece on the board in (y, x) order
func (Greedy) Candidates(board engine.Board, mask engine.Mask) []Candidate {
	var out []Candidate
	for y := 0; y <= engine.MaxOffset; y++ {
		for x := 0; x <= engine.MaxOffset; x++ {
			piece := engine.Piece{Position: engine.Position{X: x, Y: y}, Mask: mask}
			if !board.Fits(piece) {
				continue
			}
			_, report := board.Apply(piece)
			out = append(out, Candidate{
				Position:   piece.Position,
				Awarded:    report.Awarded,
				Neighbours: neighbours(board, piece),
			})
		}
	}
	return out
}

// Plan implements Strategy
func (g Greedy) Plan(state engine.GameState) (engine.Position, []engine.Direction, bool) {
	candidates := g.Candidates(state.Board, state.Piece.Mask)
	if len(candidates) == 0 {
		return engine.Position{}, nil, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.better(best) {
			best = c
		}
	}
	return best.Position, Path(state.Piece.Position, best.Position), true
}

// Path returns the shifts from one offset to another, horizontal first
func Path(from, to engine.Position) []engine.Direction {
	var dirs []engine.Direction
	for x := from.X; x < to.X; x++ {
		dirs = append(dirs, engine.Right)
	}
	for x := from.X; x > to.X; x-- {
		dirs = append(dirs, engine.Left)
	}
	for y := from.Y; y < to.Y; y++ {
		dirs = append(dirs, engine.Down)
	}
	for y := from.Y; y > to.Y; y-- {
		dirs = append(dirs, engine.Up)
	}
	return dirs
}

// neighbours counts occupied board cells orthogonally adjacent to the piece's
// cells. Board edges count as occupied.
func neighbours(board engine.Board, piece engine.Piece) int {
	count := 0
	steps := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for my := 0; my < engine.PieceSize; my++ {
		for mx := 0; mx < engine.PieceSize; mx++ {
			if !piece.Mask[my][mx] {
				continue
			}
			x, y := piece.X+mx, piece.Y+my
			for _, s := range steps {
				nx, ny := x+s[0], y+s[1]
				if nx < 0 || ny < 0 || nx >= engine.BoardSize || ny >= engine.BoardSize {
					count++
					continue
				}
				if board[ny][nx] {
					count++
				}
			}
		}
	}
	return count
}
