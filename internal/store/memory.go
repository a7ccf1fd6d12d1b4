// internal/store/memory.go
//
// In-memory session store for running games.
//
// Characteristics:
//   - Holds *game.Game values keyed by Game.ID.
//   - A game is not safe for concurrent use, so every command on a game goes
//     through Update, which runs it under the store lock.
//   - State is lost when the process restarts; sessions are not persisted.
//   - With WithTTL, games idle for longer than the TTL are dropped. Expired
//     entries are swept on Save and treated as missing everywhere else.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/fingerspell/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Store defines session storage for games.
type Store interface {
	// Save adds or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get returns a game by ID. Callers must not mutate it; use Update.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update runs fn against the game with exclusive access.
	// fn's error is returned as is.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete drops a game. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Len reports the number of stored games.
	Len() int
}

// Option configures the memory store.
type Option func(*memory)

// WithTTL drops games not touched for longer than ttl. Zero keeps games
// until Delete.
func WithTTL(ttl time.Duration) Option {
	return func(m *memory) { m.ttl = ttl }
}

// WithClock replaces time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(m *memory) { m.now = now }
}

type entry struct {
	g           *game.Game
	lastTouched time.Time
}

type memory struct {
	mu    sync.Mutex        // guards games and every game's state
	games map[string]*entry // keyed by Game.ID
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	m := &memory{games: make(map[string]*entry), now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *memory) expired(e *entry, now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.lastTouched) > m.ttl
}

// lookup returns a live entry and refreshes it. Callers hold mu.
func (m *memory) lookup(id string) (*entry, bool) {
	e, ok := m.games[id]
	if !ok {
		return nil, false
	}
	now := m.now()
	if m.expired(e, now) {
		delete(m.games, id)
		return nil, false
	}
	e.lastTouched = now
	return e, true
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if m.ttl > 0 {
		for id, e := range m.games {
			if m.expired(e, now) {
				delete(m.games, id)
			}
		}
	}
	m.games[g.ID] = &entry{g: g, lastTouched: now}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.lookup(id); ok {
		return e.g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.lookup(id)
	if !ok {
		return ErrNotFound
	}
	return fn(e.g)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games)
}
