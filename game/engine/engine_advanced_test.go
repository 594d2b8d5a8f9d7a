package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace_SimultaneousMultiClear(t *testing.T) {
	// Rows 3 and 4 miss column 3, block 1 misses its bottom row. The piece
	// completes all three in one placement.
	board := boardFrom(t,
		"...###..#",
		"...###...",
		".........",
		"###.#####",
		"###.#####",
		".........",
		".........",
		".......#.",
		"#........",
	)
	piece := Piece{Position: Position{X: 3, Y: 2}, Mask: maskFrom("###", "#..", "#..")}
	e := newTestEngine(t, newScriptedSource(1), board, piece)
	e.score = 9

	report, placed := e.Place()

	require.True(t, placed)
	assert.Equal(t, []int{3, 4}, report.Rows)
	assert.Empty(t, report.Columns)
	assert.Equal(t, []int{1}, report.Blocks)
	assert.Equal(t, uint64(27), report.Awarded)
	assert.Equal(t, 3, report.Regions())
	assert.Equal(t, uint64(36), e.GetScore())

	expected := boardFrom(t,
		"........#",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".......#.",
		"#........",
	)
	assert.Equal(t, expected, e.GetBoard())
}

func TestPlace_ColumnPassRunsBeforeRowPass(t *testing.T) {
	// The single cell at (0,0) completes both column 0 and row 0. The column
	// pass clears (0,0) first, so the row is no longer full.
	board := boardFrom(t,
		".########",
		"#........",
		"#........",
		"#........",
		"#........",
		"#........",
		"#........",
		"#........",
		"#........",
	)
	e := newTestEngine(t, newScriptedSource(1), board, Piece{Mask: maskFrom("#..", "...", "...")})

	report, placed := e.Place()

	require.True(t, placed)
	assert.Equal(t, []int{0}, report.Columns)
	assert.Empty(t, report.Rows)
	assert.Equal(t, uint64(9), e.GetScore())

	expected := boardFrom(t,
		".########",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)
	assert.Equal(t, expected, e.GetBoard())
}

func TestPlace_ColumnPassRunsBeforeRowPass_Interior(t *testing.T) {
	// (5,3) completes row 3 and column 5; only the column clears
	board := boardFrom(t,
		".....#...",
		".....#...",
		".....#...",
		"#####.###",
		".....#...",
		".....#...",
		".....#...",
		".....#...",
		".....#...",
	)
	e := newTestEngine(t, newScriptedSource(1), board, Piece{Position: Position{X: 5, Y: 3}, Mask: maskFrom("#..", "...", "...")})

	report, placed := e.Place()

	require.True(t, placed)
	assert.Equal(t, []int{5}, report.Columns)
	assert.Empty(t, report.Rows)
	assert.Equal(t, uint64(9), e.GetScore())

	after := e.GetBoard()
	for i := 0; i < BoardSize; i++ {
		assert.False(t, after[i][5], "column 5 row %d cleared", i)
		if i != 5 {
			assert.True(t, after[3][i], "row 3 column %d kept", i)
		}
	}
}

func TestPlace_ColumnPassRunsBeforeBlockPass(t *testing.T) {
	// Column 0 and block 0 complete together; the column pass empties the
	// block's left edge so the block stays.
	board := boardFrom(t,
		"###......",
		"###......",
		".##......",
		"#........",
		"#........",
		"#........",
		"#........",
		"#........",
		"#........",
	)
	e := newTestEngine(t, newScriptedSource(1), board, Piece{Position: Position{X: 0, Y: 2}, Mask: maskFrom("#..", "...", "...")})

	report, placed := e.Place()

	require.True(t, placed)
	assert.Empty(t, report.Rows)
	assert.Equal(t, []int{0}, report.Columns)
	assert.Empty(t, report.Blocks)
	assert.Equal(t, uint64(9), e.GetScore())

	expected := boardFrom(t,
		".##......",
		".##......",
		".##......",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)
	assert.Equal(t, expected, e.GetBoard())
}

func TestPlace_TwoColumnsAtOnce(t *testing.T) {
	board := boardFrom(t,
		"......##.",
		"......##.",
		"......##.",
		"......##.",
		"......##.",
		"......##.",
		"......##.",
		".........",
		".........",
	)
	// columns 6 and 7 both need rows 7 and 8
	e := newTestEngine(t, newScriptedSource(1), board, Piece{Position: Position{X: 6, Y: 6}, Mask: maskFrom("...", "##.", "##.")})

	report, placed := e.Place()

	require.True(t, placed)
	assert.Equal(t, []int{6, 7}, report.Columns)
	assert.Equal(t, uint64(18), report.Awarded)
	assert.Equal(t, Board{}, e.GetBoard())
}

func TestBoardApply_DoesNotMutateReceiver(t *testing.T) {
	board := boardFrom(t,
		"########.",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)
	original := board
	piece := Piece{Position: Position{X: 6, Y: 0}, Mask: maskFrom("..#", "...", "...")}

	next, report := board.Apply(piece)

	assert.Equal(t, original, board)
	assert.Equal(t, []int{0}, report.Rows)
	assert.Equal(t, Board{}, next)
}
