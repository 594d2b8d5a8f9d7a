package service

import (
	"errors"
	"time"

	"github.com/wricardo/blockdoku/game/engine"
)

var (
	// ErrInvalidDirection is returned for direction names other than up, down, left and right
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrSessionNotFound is returned by session managers for unknown IDs
	ErrSessionNotFound = errors.New("session not found")
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ShiftResult contains the result of a shift operation
type ShiftResult struct {
	Moved     bool              `json:"moved"` // false when clamped at the edge
	From      engine.Position   `json:"from"`
	To        engine.Position   `json:"to"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
}

// PlaceResult contains the result of a placement attempt
type PlaceResult struct {
	Placed     bool               `json:"placed"`
	Cleared    engine.ClearReport `json:"cleared"`
	ScoreDelta uint64             `json:"score_delta"`
	GameState  *engine.GameState  `json:"game_state"`
	Message    string             `json:"message"`
	Events     []GameEvent        `json:"events,omitempty"`
}

// Event types
const (
	EventPlaced  = "placed"
	EventBlocked = "blocked"
	EventCleared = "cleared"
	EventReset   = "reset"
)

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "placed", "blocked", "cleared", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Prefilled   int    `json:"prefilled"` // occupied cells in a fixed layout
	RandomFill  bool   `json:"random_fill"`
}
