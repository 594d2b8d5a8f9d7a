package service

import (
	"context"
	"time"

	"github.com/wricardo/blockdoku/game/engine"
	"github.com/wricardo/blockdoku/game/scoreboard"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Shift(ctx context.Context, sessionID, direction string) (*ShiftResult, error)
	Place(ctx context.Context, sessionID string) (*PlaceResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)
	FinishSession(ctx context.Context, sessionID, player string) (*scoreboard.Entry, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	TopScores(ctx context.Context, limit int) ([]scoreboard.Entry, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	ConfigID       string // ruleset the session was created from, e.g. "classic"
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
