package scoreboard

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps entries in process memory. Used when no Redis is configured.
type MemoryStore struct {
	entries []Entry
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory scoreboard
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record inserts an entry keeping the slice ordered by score, then by time
func (s *MemoryStore) Record(ctx context.Context, entry Entry) (Entry, error) {
	entry, err := normalize(entry)
	if err != nil {
		return entry, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := sort.Search(len(s.entries), func(i int) bool {
		return ranksBefore(entry, s.entries[i])
	})
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = entry

	return entry, nil
}

// Top returns up to limit entries, highest score first
func (s *MemoryStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	limit = clampLimit(limit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := min(limit, len(s.entries))
	out := make([]Entry, n)
	copy(out, s.entries[:n])
	return out, nil
}

func ranksBefore(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.RecordedAt.Before(b.RecordedAt)
}
