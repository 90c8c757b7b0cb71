package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"dirtyFeedAPI/internal/types/drink"
)

// logFixture builds one feed entry with sensible defaults.
type logFixture struct {
	id     string
	user   string
	bar    string
	city   string
	rating int
	style  string
	ts     time.Time
	golden bool
}

var fixtureSeq int

func makeLog(f logFixture) *drink.Log {
	fixtureSeq++
	if f.id == "" {
		f.id = fmt.Sprintf("fixture-%d", fixtureSeq)
	}
	if f.user == "" {
		f.user = "u1"
	}
	if f.bar == "" {
		f.bar = "bar-velvet"
	}
	if f.city == "" {
		f.city = "New York"
	}
	if f.rating == 0 {
		f.rating = 4
	}
	if f.style == "" {
		f.style = drink.StyleDirty
	}
	if f.ts.IsZero() {
		f.ts = time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	}
	return &drink.Log{
		ID:              f.id,
		UserID:          f.user,
		UserName:        "User " + f.user,
		UserAvatar:      "https://example.com/" + f.user + ".jpg",
		BarID:           f.bar,
		BarName:         "Bar " + f.bar,
		City:            f.city,
		Rating:          f.rating,
		Style:           f.style,
		Timestamp:       f.ts,
		IsGoldenHourLog: f.golden,
	}
}

// memStateStore is the in-memory stand-in for the pgx-backed store.
type memStateStore struct {
	mu      sync.Mutex
	records map[string][]byte
}

func newMemStateStore() *memStateStore {
	return &memStateStore{records: make(map[string][]byte)}
}

func (m *memStateStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.records[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memStateStore) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.records[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *memStateStore) Invalidate(keys ...string) {}

func (m *memStateStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[key]
	return ok
}
