package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedSource replays values in order, wrapping around at the end
type scriptedSource struct {
	values []int
	calls  int
	bounds []int
}

func newScriptedSource(values ...int) *scriptedSource {
	return &scriptedSource{values: values}
}

func (s *scriptedSource) Intn(n int) int {
	v := s.values[s.calls%len(s.values)]
	s.calls++
	s.bounds = append(s.bounds, n)
	return v % n
}

func maskFrom(rows ...string) Mask {
	var m Mask
	for y, row := range rows {
		for x, char := range row {
			m[y][x] = char == OccupiedChar
		}
	}
	return m
}

func boardFrom(t *testing.T, rows ...string) Board {
	t.Helper()
	board, err := ParseLayout(rows)
	require.NoError(t, err)
	return board
}

// newTestEngine creates a classic engine and installs the given board and piece
func newTestEngine(t *testing.T, src RandomSource, board Board, piece Piece) *GameEngine {
	t.Helper()
	e, err := NewEngine(DefaultGameConfig(), src)
	require.NoError(t, err)
	require.NoError(t, e.SetState(GameState{Board: board, Piece: piece}))
	return e
}
