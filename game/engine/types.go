package engine

import (
	"fmt"
	"strings"
)

const (
	// BoardSize is the width and height of the board.
	BoardSize = 9
	// PieceSize is the width and height of a piece mask.
	PieceSize = 3
	// BlockSize is the width and height of a scoring block.
	BlockSize = 3
	// MaxOffset is the largest x or y offset that keeps a piece on the board.
	MaxOffset = BoardSize - PieceSize

	// ClearAward is the number of points awarded per cleared row, column or block.
	ClearAward = 9

	// Layout characters
	OccupiedChar = '#'
	EmptyChar    = '.'
)

// Direction is one of the four shift directions
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in a stable order
var Directions = []Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts a direction name (case-insensitive) into a Direction
func ParseDirection(name string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return 0, false
	}
}

// Board is the 9x9 occupancy grid, indexed [row][column]
type Board [BoardSize][BoardSize]bool

// Mask is a 3x3 piece shape, indexed [row][column]
type Mask [PieceSize][PieceSize]bool

// Position represents x,y coordinates (x is the column, y the row)
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Piece is the active, not yet committed piece
type Piece struct {
	Position
	Mask Mask `json:"mask"`
}

// ClearReport lists the regions cleared by a single placement
type ClearReport struct {
	Rows    []int  `json:"rows,omitempty"`
	Columns []int  `json:"columns,omitempty"`
	Blocks  []int  `json:"blocks,omitempty"`
	Awarded uint64 `json:"awarded"`
}

// Regions returns the total number of cleared regions
func (r ClearReport) Regions() int {
	return len(r.Rows) + len(r.Columns) + len(r.Blocks)
}

// GameState is a read-only snapshot of a game
type GameState struct {
	Board      Board  `json:"board"`
	Piece      Piece  `json:"piece"`
	Score      uint64 `json:"score"`
	Legal      bool   `json:"legal"`
	ConfigName string `json:"config_name"`
}

// Rows renders the board as strings of '#' and '.'
func (b Board) Rows() []string {
	rows := make([]string, BoardSize)
	for y := 0; y < BoardSize; y++ {
		var sb strings.Builder
		for x := 0; x < BoardSize; x++ {
			if b[y][x] {
				sb.WriteByte(OccupiedChar)
			} else {
				sb.WriteByte(EmptyChar)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

func (b Board) String() string {
	return strings.Join(b.Rows(), "\n")
}

// Rows renders the mask as strings of '#' and '.'
func (m Mask) Rows() []string {
	rows := make([]string, PieceSize)
	for y := 0; y < PieceSize; y++ {
		var sb strings.Builder
		for x := 0; x < PieceSize; x++ {
			if m[y][x] {
				sb.WriteByte(OccupiedChar)
			} else {
				sb.WriteByte(EmptyChar)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// Cells returns the number of occupied mask cells
func (m Mask) Cells() int {
	count := 0
	for _, row := range m {
		for _, filled := range row {
			if filled {
				count++
			}
		}
	}
	return count
}

// Bounds returns the bounding box of the occupied mask cells relative to the
// mask's top-left corner. ok is false for an empty mask.
func (p Piece) Bounds() (lo, hi Position, ok bool) {
	lo = Position{X: PieceSize - 1, Y: PieceSize - 1}
	for y := 0; y < PieceSize; y++ {
		for x := 0; x < PieceSize; x++ {
			if !p.Mask[y][x] {
				continue
			}
			ok = true
			lo.X = min(lo.X, x)
			lo.Y = min(lo.Y, y)
			hi.X = max(hi.X, x)
			hi.Y = max(hi.Y, y)
		}
	}
	if !ok {
		return Position{}, Position{}, false
	}
	return lo, hi, true
}

// Covers reports whether the piece occupies board cell (x, y) at its current offset
func (p Piece) Covers(x, y int) bool {
	dx, dy := x-p.X, y-p.Y
	if dx < 0 || dy < 0 || dx >= PieceSize || dy >= PieceSize {
		return false
	}
	return p.Mask[dy][dx]
}
