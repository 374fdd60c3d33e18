// internal/store/memory.go
//
// In-memory implementation of the round Store.
// Holds the sessions of the local API for as long as the process lives.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - The map is guarded by an RWMutex; each entry has its own mutex so a
//     slow operation on one session (a word fetch) never blocks the others.
//   - Entries remember when they were last touched; Sweep drops idle ones.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordguess/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get returns a consistent snapshot of a session.
	Get(ctx context.Context, id string) (game.Snapshot, error)

	// Update runs fn with exclusive access to the session.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete removes a session; deleting a missing one is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions untouched since before cutoff and reports how many.
	Sweep(ctx context.Context, cutoff time.Time) int
}

type entry struct {
	mu      sync.Mutex // serialises access to s
	s       *game.Session
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex // guards entries
	entries map[string]*entry
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{entries: make(map[string]*entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID()] = &entry{s: s, touched: m.now()}
	return nil
}

func (m *memory) lookup(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// acquire returns the entry for id with its mutex held. An entry deleted or
// replaced while we waited for its lock is not returned.
func (m *memory) acquire(id string) (*entry, error) {
	for {
		e, err := m.lookup(id)
		if err != nil {
			return nil, err
		}
		e.mu.Lock()
		m.mu.RLock()
		current := m.entries[id] == e
		m.mu.RUnlock()
		if current {
			return e, nil
		}
		e.mu.Unlock()
	}
}

func (m *memory) Get(ctx context.Context, id string) (game.Snapshot, error) {
	e, err := m.acquire(id)
	if err != nil {
		return game.Snapshot{}, err
	}
	defer e.mu.Unlock()
	e.touched = m.now()
	return e.s.Snapshot(), nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	e, err := m.acquire(id)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()
	e.touched = m.now()
	return fn(e.s)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		// Skip entries that are busy; they are in use.
		if !e.mu.TryLock() {
			continue
		}
		if e.touched.Before(cutoff) {
			delete(m.entries, id)
			n++
		}
		e.mu.Unlock()
	}
	return n
}
