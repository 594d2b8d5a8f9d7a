package scoreboard

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is used when Top is called with a non-positive limit
const DefaultLimit = 10

// ErrInvalidEntry is returned when an entry cannot be recorded
var ErrInvalidEntry = errors.New("invalid scoreboard entry")

// Entry is one finished game
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Player     string    `json:"player"`
	Score      uint64    `json:"score"`
	ConfigName string    `json:"config_name"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Store records final scores and answers leaderboard queries
type Store interface {
	// Record stores an entry, assigning ID and RecordedAt when unset
	Record(ctx context.Context, entry Entry) (Entry, error)
	// Top returns the best entries, highest score first
	Top(ctx context.Context, limit int) ([]Entry, error)
}

// normalize fills in defaults shared by every store
func normalize(entry Entry) (Entry, error) {
	entry.Player = strings.TrimSpace(entry.Player)
	if entry.Player == "" {
		entry.Player = "anonymous"
	}
	if len(entry.Player) > 64 {
		return entry, errors.Join(ErrInvalidEntry, errors.New("player name longer than 64 bytes"))
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	return entry, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
