package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Persisted record keys, carried over from the mobile app's storage.
const (
	KeyFeedLogs    = "dirty_feed_logs"
	KeyMyLogs      = "dirty_feed_my_logs"
	KeyStreakState = "dirty_feed_streak"
)

// StateStore is the keyed whole-value storage behind the feed state. Load
// reports whether the key existed; Save replaces the full value;
// Invalidate drops any cached copies so the next Load hits storage again.
type StateStore interface {
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Invalidate(keys ...string)
}

// PgStateStore keeps each aggregate as one JSONB row in app_state, with a
// small read-through cache on top so repeated loads between mutations don't
// hit the database.
type PgStateStore struct {
	db *pgxpool.Pool

	mu    sync.Mutex
	cache map[string][]byte
}

func NewPgStateStore(db *pgxpool.Pool) *PgStateStore {
	return &PgStateStore{
		db:    db,
		cache: make(map[string][]byte),
	}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *PgStateStore) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
	`
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create app_state table: %w", err)
	}
	return nil
}

func (s *PgStateStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()

	if ok {
		if err := json.Unmarshal(cached, dest); err != nil {
			return false, fmt.Errorf("failed to decode cached state %q: %w", key, err)
		}
		return true, nil
	}

	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT value FROM app_state WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load state %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode state %q: %w", key, err)
	}

	s.mu.Lock()
	s.cache[key] = raw
	s.mu.Unlock()

	return true, nil
}

func (s *PgStateStore) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode state %q: %w", key, err)
	}

	query := `
	INSERT INTO app_state (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key)
	DO UPDATE SET value = $2, updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, key, raw); err != nil {
		return fmt.Errorf("failed to save state %q: %w", key, err)
	}

	s.mu.Lock()
	s.cache[key] = raw
	s.mu.Unlock()

	return nil
}

func (s *PgStateStore) Invalidate(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.cache, key)
	}
}
