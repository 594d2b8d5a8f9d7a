package autoplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/blockdoku/game/engine"
)

type constSource int

func (c constSource) Intn(n int) int { return int(c) % n }

func parseBoard(t *testing.T, rows ...string) engine.Board {
	t.Helper()
	board, err := engine.ParseLayout(rows)
	require.NoError(t, err)
	return board
}

func single(x, y int) engine.Mask {
	var m engine.Mask
	m[y][x] = true
	return m
}

// blocked has one occupied cell in every 3x3 window, so a full mask fits nowhere
func blocked(t *testing.T) engine.Board {
	return parseBoard(t,
		".........",
		".........",
		"..#..#..#",
		".........",
		".........",
		"..#..#..#",
		".........",
		".........",
		"..#..#..#",
	)
}

func full() engine.Mask {
	var m engine.Mask
	for y := range m {
		for x := range m[y] {
			m[y][x] = true
		}
	}
	return m
}

func TestPath(t *testing.T) {
	assert.Empty(t, Path(engine.Position{X: 2, Y: 2}, engine.Position{X: 2, Y: 2}))
	assert.Equal(t,
		[]engine.Direction{engine.Right, engine.Right, engine.Down},
		Path(engine.Position{}, engine.Position{X: 2, Y: 1}))
	assert.Equal(t,
		[]engine.Direction{engine.Left, engine.Up, engine.Up, engine.Up},
		Path(engine.Position{X: 5, Y: 6}, engine.Position{X: 4, Y: 3}))
}

func TestGreedy_PrefersClearing(t *testing.T) {
	board := parseBoard(t,
		".........",
		".........",
		".........",
		".........",
		"####.####",
		".........",
		".........",
		".........",
		".........",
	)
	state := engine.GameState{Board: board, Piece: engine.Piece{Mask: single(0, 0)}}

	target, dirs, ok := Greedy{}.Plan(state)

	require.True(t, ok)
	assert.Equal(t, engine.Position{X: 4, Y: 4}, target)
	assert.Len(t, dirs, 8)
}

func TestGreedy_PrefersContactThenLowerOffset(t *testing.T) {
	// On an empty board the corners touch two edges. (6,6) with the mask's
	// bottom-right cell reaches the (8,8) corner; (0,0) cannot.
	state := engine.GameState{Piece: engine.Piece{Mask: single(2, 2)}}
	target, _, ok := Greedy{}.Plan(state)
	require.True(t, ok)
	assert.Equal(t, engine.Position{X: 6, Y: 6}, target)

	// top-left cell reaches (0,0) first in scan order
	state = engine.GameState{Piece: engine.Piece{Mask: single(0, 0)}}
	target, dirs, ok := Greedy{}.Plan(state)
	require.True(t, ok)
	assert.Equal(t, engine.Position{}, target)
	assert.Empty(t, dirs)
}

func TestGreedy_Stuck(t *testing.T) {
	board := blocked(t)
	require.False(t, board.HasFullRegion())

	_, dirs, ok := Greedy{}.Plan(engine.GameState{Board: board, Piece: engine.Piece{Mask: full()}})
	assert.False(t, ok)
	assert.Nil(t, dirs)
}

func TestGreedy_CandidatesAreLegal(t *testing.T) {
	board := parseBoard(t,
		"#.#.#.#.#",
		".........",
		"#.#.#.#.#",
		".........",
		"#.#.#.#.#",
		".........",
		"#.#.#.#.#",
		".........",
		"#.#.#.#.#",
	)
	mask := single(1, 1)
	mask[0][1] = true

	candidates := Greedy{}.Candidates(board, mask)
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		assert.True(t, board.Fits(engine.Piece{Position: c.Position, Mask: mask}), "candidate %v", c.Position)
	}
}

func TestGreedy_EmptyMaskFitsEverywhere(t *testing.T) {
	candidates := Greedy{}.Candidates(blocked(t), engine.Mask{})
	assert.Len(t, candidates, (engine.MaxOffset+1)*(engine.MaxOffset+1))
}
