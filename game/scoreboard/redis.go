package scoreboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces the scoreboard keys
const DefaultPrefix = "blockdoku"

// RedisStore keeps the leaderboard in a sorted set and entries as JSON strings
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

// Dial connects to Redis and verifies the connection with PING
func Dial(ctx context.Context, addr, password string, db int, prefix string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewRedisStore(rdb, prefix), nil
}

func (s *RedisStore) keyLeaderboard() string { return s.prefix + ":leaderboard" }
func (s *RedisStore) keyEntry(id string) string { return s.prefix + ":entry:" + id }

// Record writes the entry and its leaderboard rank in one transaction
func (s *RedisStore) Record(ctx context.Context, entry Entry) (Entry, error) {
	entry, err := normalize(entry)
	if err != nil {
		return entry, err
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return entry, err
	}

	id := entry.ID.String()
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keyEntry(id), raw, 0)
		pipe.ZAdd(ctx, s.keyLeaderboard(), redis.Z{Score: float64(entry.Score), Member: id})
		return nil
	})
	if err != nil {
		return entry, fmt.Errorf("record score: %w", err)
	}
	return entry, nil
}

// Top returns up to limit entries, highest score first
func (s *RedisStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	limit = clampLimit(limit)

	ids, err := s.rdb.ZRevRange(ctx, s.keyLeaderboard(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if len(ids) == 0 {
		return []Entry{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.keyEntry(id)
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}

	out := make([]Entry, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// rank without entry body
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(str), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Close releases the underlying client
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
