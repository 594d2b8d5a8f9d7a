package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(DefaultGameConfig(), newScriptedSource(1))
	require.NoError(t, err)
	require.NotNil(t, engine)

	state := engine.GetState()
	assert.Equal(t, Board{}, state.Board)
	assert.Equal(t, Position{}, state.Piece.Position)
	assert.Zero(t, state.Score)
	assert.True(t, state.Legal)
	assert.Equal(t, "classic", state.ConfigName)
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := DefaultGameConfig()
	config.Name = ""

	_, err := NewEngine(config, newScriptedSource(1))
	assert.Error(t, err)
}

func TestNewEngine_NilSource(t *testing.T) {
	_, err := NewEngine(DefaultGameConfig(), nil)
	assert.Error(t, err)
}

func TestNewEngineWithDefaults(t *testing.T) {
	engine := NewEngineWithDefaults(NewRandomSource(42))
	require.NotNil(t, engine)
	assert.Zero(t, engine.GetScore())
	assert.Equal(t, DefaultGameConfig().Name, engine.GetConfig().Name)
}

func TestEngine_LayoutConfig(t *testing.T) {
	config := DefaultGameConfig()
	config.Name = "corners"
	config.Layout = []string{
		"#.......#",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		"#.......#",
	}

	engine, err := NewEngine(config, newScriptedSource(1))
	require.NoError(t, err)

	board := engine.GetBoard()
	assert.Equal(t, 4, board.Occupied())
	assert.True(t, board[0][0])
	assert.True(t, board[8][8])
}

func TestEngine_GetStateIsSnapshot(t *testing.T) {
	engine := newTestEngine(t, newScriptedSource(1), Board{}, Piece{Mask: maskFrom("#..", "...", "...")})

	state := engine.GetState()
	state.Board[0][0] = true
	state.Piece.X = 5

	assert.False(t, engine.GetBoard()[0][0])
	assert.Equal(t, 0, engine.GetPiece().X)
}

func TestEngine_LegalFlagInState(t *testing.T) {
	board := Board{}
	board[0][0] = true

	engine := newTestEngine(t, newScriptedSource(1), board, Piece{Mask: maskFrom("#..", "...", "...")})
	assert.False(t, engine.GetState().Legal)

	engine.Shift(Right)
	assert.True(t, engine.GetState().Legal)
}

func TestEngine_SetStateRejectsOffBoardPiece(t *testing.T) {
	engine := NewEngineWithDefaults(newScriptedSource(1))

	for _, pos := range []Position{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: MaxOffset + 1, Y: 0}, {X: 0, Y: MaxOffset + 1}} {
		err := engine.SetState(GameState{Piece: Piece{Position: pos}})
		assert.True(t, errors.Is(err, ErrInvalidState), "position %v", pos)
	}
}

func TestEngine_Reset(t *testing.T) {
	src := newScriptedSource(1)
	board := boardFrom(t,
		"########.",
		".........",
		".........",
		".........",
		".........",
		".........",
		"#........",
		".........",
		".........",
	)
	engine := newTestEngine(t, src, board, Piece{Position: Position{X: 6, Y: 0}, Mask: maskFrom("..#", "...", "...")})
	_, placed := engine.Place()
	require.True(t, placed)
	require.Equal(t, uint64(9), engine.GetScore())

	engine.Shift(Down)
	state := engine.Reset()

	assert.Zero(t, state.Score)
	assert.Equal(t, Board{}, state.Board)
	assert.Equal(t, Position{}, state.Piece.Position)
}

func TestEngine_RandomFill(t *testing.T) {
	config := DefaultGameConfig()
	config.RandomFill = true

	// every cell occupied, so every region is full and cleared at start
	engine, err := NewEngine(config, newScriptedSource(0))
	require.NoError(t, err)
	assert.Equal(t, Board{}, engine.GetBoard())
	assert.Zero(t, engine.GetScore())

	// alternating cells never complete a region
	engine, err = NewEngine(config, newScriptedSource(0, 1))
	require.NoError(t, err)
	board := engine.GetBoard()
	assert.Equal(t, 41, board.Occupied())
	assert.False(t, board.HasFullRegion())
}

func TestEngine_ImplementsEngine(t *testing.T) {
	var _ Engine = (*GameEngine)(nil)
}
