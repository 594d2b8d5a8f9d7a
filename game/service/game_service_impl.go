package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/blockdoku/game/engine"
	"github.com/wricardo/blockdoku/game/scoreboard"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	scores   scoreboard.Store
	logger   *zap.Logger
	mu       sync.RWMutex
}

// Option configures the game service
type Option func(*gameServiceImpl)

// WithScoreboard sets where finished games are recorded
func WithScoreboard(store scoreboard.Store) Option {
	return func(s *gameServiceImpl) {
		if store != nil {
			s.scores = store
		}
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *gameServiceImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewGameService creates a new game service instance. Without WithScoreboard
// finished games go to an in-memory scoreboard.
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		scores:   scoreboard.NewMemoryStore(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "classic"
	}
	return configName
}

// sessionConfigID returns the ruleset ID recorded at creation. Only sessions
// created outside CreateSession fall back to a directory scan.
func (s *gameServiceImpl) sessionConfigID(sess *Session) string {
	if sess.ConfigID != "" {
		return sess.ConfigID
	}
	return s.getConfigID(sess.Config.Name)
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	state := sess.Engine.GetState()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      &state,
		GameConfig:     sess.Config,
	}
}

// getSession looks up a session and marks it as used. Callers hold s.mu.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}
	sess.ConfigID = configID

	s.logger.Info("session_create",
		zap.String("session", sess.ID),
		zap.String("config", configID),
	)

	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, s.sessionConfigID(sess)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.sessionConfigID(sess)))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.logger.Info("session_delete", zap.String("session", sessionID))
	return nil
}

// Shift moves the active piece one cell
func (s *gameServiceImpl) Shift(ctx context.Context, sessionID, direction string) (*ShiftResult, error) {
	dir, ok := engine.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("%w: %q (use up, down, left or right)", ErrInvalidDirection, direction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	from := sess.Engine.GetPiece().Position
	sess.Engine.Shift(dir)
	state := sess.Engine.GetState()
	to := state.Piece.Position

	result := &ShiftResult{
		Moved:     from != to,
		From:      from,
		To:        to,
		GameState: &state,
	}
	switch {
	case !result.Moved:
		result.Message = fmt.Sprintf("Piece is already at the %s edge", edgeName(dir))
	case state.Legal:
		result.Message = fmt.Sprintf("Moved %s to (%d,%d)", dir, to.X, to.Y)
	default:
		result.Message = fmt.Sprintf("Moved %s to (%d,%d); piece overlaps occupied cells", dir, to.X, to.Y)
	}

	s.logger.Debug("piece_shift",
		zap.String("session", sess.ID),
		zap.Stringer("direction", dir),
		zap.Bool("moved", result.Moved),
		zap.Int("x", to.X),
		zap.Int("y", to.Y),
	)

	return result, nil
}

// Place commits the active piece if it fits
func (s *gameServiceImpl) Place(ctx context.Context, sessionID string) (*PlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	pos := sess.Engine.GetPiece().Position
	before := sess.Engine.GetScore()
	report, placed := sess.Engine.Place()
	state := sess.Engine.GetState()
	msgs := sess.Config.Messages
	now := time.Now()

	result := &PlaceResult{
		Placed:     placed,
		Cleared:    report,
		ScoreDelta: state.Score - before,
		GameState:  &state,
	}

	if !placed {
		result.Message = orDefault(msgs.Blocked, "Can't place there!")
		result.Events = append(result.Events, GameEvent{
			Type:      EventBlocked,
			Message:   result.Message,
			Timestamp: now,
			Position:  pos,
		})
		return result, nil
	}

	result.Message = orDefault(msgs.Placed, "Placed")
	result.Events = append(result.Events, GameEvent{
		Type:      EventPlaced,
		Message:   fmt.Sprintf("Placed piece at (%d,%d)", pos.X, pos.Y),
		Timestamp: now,
		Position:  pos,
	})

	if n := report.Regions(); n > 0 {
		result.Message = fmt.Sprintf(orDefault(msgs.Cleared, "Cleared %d region(s)! +%d"), n, report.Awarded)
		result.Events = append(result.Events, GameEvent{
			Type:      EventCleared,
			Message:   describeClear(report),
			Timestamp: now,
			Position:  pos,
		})
	}

	s.logger.Info("piece_place",
		zap.String("session", sess.ID),
		zap.Int("x", pos.X),
		zap.Int("y", pos.Y),
		zap.Int("regions", report.Regions()),
		zap.Uint64("score", state.Score),
	)

	return result, nil
}

// Reset restarts a session's game from its ruleset
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset()
	s.logger.Info("session_reset", zap.String("session", sess.ID))
	return &state, nil
}

// FinishSession records the final score and removes the session
func (s *gameServiceImpl) FinishSession(ctx context.Context, sessionID, player string) (*scoreboard.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	entry, err := s.scores.Record(ctx, scoreboard.Entry{
		Player:     player,
		Score:      sess.Engine.GetScore(),
		ConfigName: s.sessionConfigID(sess),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record score: %w", err)
	}

	if err := s.sessions.Delete(sess.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}

	s.logger.Info("session_finish",
		zap.String("session", sess.ID),
		zap.String("player", entry.Player),
		zap.Uint64("score", entry.Score),
		zap.Stringer("entry", entry.ID),
	)

	return &entry, nil
}

// GetGameState returns the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	return &state, nil
}

// TopScores returns the leaderboard
func (s *gameServiceImpl) TopScores(ctx context.Context, limit int) ([]scoreboard.Entry, error) {
	return s.scores.Top(ctx, limit)
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

func describeClear(report engine.ClearReport) string {
	var parts []string
	if len(report.Rows) > 0 {
		parts = append(parts, fmt.Sprintf("rows %v", report.Rows))
	}
	if len(report.Columns) > 0 {
		parts = append(parts, fmt.Sprintf("columns %v", report.Columns))
	}
	if len(report.Blocks) > 0 {
		parts = append(parts, fmt.Sprintf("blocks %v", report.Blocks))
	}
	return fmt.Sprintf("Cleared %s for %d points", strings.Join(parts, ", "), report.Awarded)
}

func edgeName(dir engine.Direction) string {
	switch dir {
	case engine.Up:
		return "top"
	case engine.Down:
		return "bottom"
	default:
		return dir.String()
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
