package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	for _, dir := range Directions {
		parsed, ok := ParseDirection(dir.String())
		require.True(t, ok)
		assert.Equal(t, dir, parsed)
	}

	parsed, ok := ParseDirection("  LEFT ")
	assert.True(t, ok)
	assert.Equal(t, Left, parsed)

	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
}

func TestPieceGenerator_Probability(t *testing.T) {
	src := newScriptedSource(0, 1, 2)
	piece := NewPieceGenerator(src).Generate()

	assert.Equal(t, Position{}, piece.Position)
	assert.Equal(t, maskFrom("#..", "#..", "#.."), piece.Mask)
	require.Len(t, src.bounds, PieceSize*PieceSize)
	for _, n := range src.bounds {
		assert.Equal(t, 3, n)
	}
}

func TestPieceGenerator_IndependentDraws(t *testing.T) {
	gen := NewPieceGenerator(newScriptedSource(
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		1, 1, 1, 1, 1, 1, 1, 1, 1,
	))

	assert.Equal(t, 9, gen.Generate().Mask.Cells())
	assert.Equal(t, 0, gen.Generate().Mask.Cells())
}

func TestPieceBounds(t *testing.T) {
	piece := Piece{Mask: maskFrom("...", ".##", ".#.")}
	lo, hi, ok := piece.Bounds()
	require.True(t, ok)
	assert.Equal(t, Position{X: 1, Y: 1}, lo)
	assert.Equal(t, Position{X: 2, Y: 2}, hi)

	_, _, ok = Piece{}.Bounds()
	assert.False(t, ok)
}

func TestPieceCovers(t *testing.T) {
	piece := Piece{Position: Position{X: 4, Y: 5}, Mask: maskFrom("#..", "...", "..#")}

	assert.True(t, piece.Covers(4, 5))
	assert.True(t, piece.Covers(6, 7))
	assert.False(t, piece.Covers(5, 5))
	assert.False(t, piece.Covers(3, 5))
	assert.False(t, piece.Covers(7, 7))
}

func TestBlockIndexing(t *testing.T) {
	for n := 0; n < BoardSize; n++ {
		x, y := BlockOrigin(n)
		assert.Equal(t, n, BlockIndex(x, y))
		assert.Equal(t, n, BlockIndex(x+2, y+2))
	}
	x, y := BlockOrigin(5)
	assert.Equal(t, 6, x)
	assert.Equal(t, 3, y)
}

func TestGameStateJSON(t *testing.T) {
	state := GameState{
		Piece:      Piece{Position: Position{X: 2, Y: 3}, Mask: maskFrom("#..", "...", "...")},
		Score:      27,
		Legal:      true,
		ConfigName: "classic",
	}
	state.Board[0][8] = true

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	piece := decoded["piece"].(map[string]any)
	assert.Equal(t, float64(2), piece["x"])
	assert.Equal(t, float64(3), piece["y"])
	assert.Equal(t, float64(27), decoded["score"])

	var roundTrip GameState
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Equal(t, state, roundTrip)
}
