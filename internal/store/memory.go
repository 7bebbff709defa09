// internal/store/memory.go
//
// In-memory store of session states for the HTTP front end.
//
// Characteristics:
//   - Stores *session.State objects keyed by session ID in a map.
//   - The map lock only guards lookups; each session has its own lock.
//   - Update runs the caller's turn under the session's write lock, so turns on one
//     session are strictly serialized while other sessions proceed.
//   - State is lost when the process restarts.
//   - Sessions older than the configured TTL are evicted lazily on Create.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/guessbot/internal/session"
)

var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for session states.
type Store interface {
	// Create adds a new session. It fails if the ID is already taken.
	Create(ctx context.Context, st *session.State) error

	// View runs fn with read access to a session.
	View(ctx context.Context, id string, fn func(*session.State) error) error

	// Update runs fn with exclusive access to a session.
	Update(ctx context.Context, id string, fn func(*session.State) error) error

	// Len reports how many sessions are held.
	Len() int
}

// entry pairs a session with the lock that serializes its turns.
type entry struct {
	mu sync.RWMutex
	st *session.State
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions, not the states in it
	sessions map[string]*entry // keyed by State.ID
	ttl      time.Duration     // zero keeps sessions forever
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{sessions: make(map[string]*entry), ttl: ttl, now: time.Now}
}

// Create adds st to the map after evicting expired sessions.
func (m *memory) Create(ctx context.Context, st *session.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked()
	if _, ok := m.sessions[st.ID]; ok {
		return errors.New("session id already in use")
	}
	m.sessions[st.ID] = &entry{st: st}
	return nil
}

// View looks up a session and hands it to fn under the session's read lock.
// fn must not mutate the state.
func (m *memory) View(ctx context.Context, id string, fn func(*session.State) error) error {
	e, err := m.lookup(ctx, id)
	if err != nil {
		return err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.st)
}

// Update looks up a session and hands it to fn under the session's write lock.
func (m *memory) Update(ctx context.Context, id string, fn func(*session.State) error) error {
	e, err := m.lookup(ctx, id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.st)
}

func (m *memory) lookup(ctx context.Context, id string) (*entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// Len reports how many sessions are held.
func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *memory) evictLocked() {
	if m.ttl <= 0 {
		return
	}
	cutoff := m.now().Add(-m.ttl)
	for id, e := range m.sessions {
		// CreatedAt never changes after Create.
		if e.st.CreatedAt.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
