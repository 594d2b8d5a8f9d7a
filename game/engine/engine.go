package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when a snapshot violates the piece offset bounds
var ErrInvalidState = errors.New("invalid game state")

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	GetState() GameState
	SetState(state GameState) error
	Reset() GameState
	GetScore() uint64
	GetBoard() Board
	GetPiece() Piece

	// Piece operations
	Shift(dir Direction)
	IsLegal() bool
	Place() (ClearReport, bool)

	// Configuration
	GetConfig() *GameConfig
}

// GameEngine implements the Engine interface
type GameEngine struct {
	board     Board
	piece     Piece
	score     uint64
	config    *GameConfig
	src       RandomSource
	generator *PieceGenerator
}

// NewEngine creates a new game engine with the provided configuration.
// src feeds both piece generation and a random starting fill.
func NewEngine(config *GameConfig, src RandomSource) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}

	engine := &GameEngine{
		config:    config,
		src:       src,
		generator: NewPieceGenerator(src),
	}
	engine.Reset()

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in classic rules
func NewEngineWithDefaults(src RandomSource) *GameEngine {
	engine, err := NewEngine(DefaultGameConfig(), src)
	if err != nil {
		// the built-in config always validates
		panic(err)
	}
	return engine
}

// GetState returns a snapshot of the current game
func (e *GameEngine) GetState() GameState {
	return GameState{
		Board:      e.board,
		Piece:      e.piece,
		Score:      e.score,
		Legal:      e.IsLegal(),
		ConfigName: e.config.Name,
	}
}

// SetState installs a snapshot. The legality flag and config name are ignored.
func (e *GameEngine) SetState(state GameState) error {
	p := state.Piece
	if p.X < 0 || p.X > MaxOffset || p.Y < 0 || p.Y > MaxOffset {
		return fmt.Errorf("%w: piece offset (%d,%d) outside [0,%d]", ErrInvalidState, p.X, p.Y, MaxOffset)
	}
	e.board = state.Board
	e.piece = state.Piece
	e.score = state.Score
	return nil
}

// Reset restores the starting board, zeroes the score and draws a new piece
func (e *GameEngine) Reset() GameState {
	e.board = InitBoardFromConfig(e.config, e.src)
	e.score = 0
	e.piece = e.generator.Generate()
	return e.GetState()
}

// GetScore returns the current score
func (e *GameEngine) GetScore() uint64 {
	return e.score
}

// GetBoard returns a copy of the board
func (e *GameEngine) GetBoard() Board {
	return e.board
}

// GetPiece returns a copy of the active piece
func (e *GameEngine) GetPiece() Piece {
	return e.piece
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}
