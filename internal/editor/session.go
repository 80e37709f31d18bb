// Package editor manages the per-operator editing sessions served over
// WebSocket: an edital document with its drag state and a detail modal.
package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/edital"
	"github.com/matthewbaird/silic/internal/modal"
)

// Session holds per-connection editing state. Callers serialise access
// with Lock/Unlock; the document and modal are not safe for concurrent use.
type Session struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`

	Document *edital.Session  `json:"-"`
	Modal    *modal.Controller `json:"-"`

	mu sync.Mutex
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch updates the last activity timestamp.
func (s *Session) Touch() {
	s.LastActiveAt = time.Now()
}

// IsExpired returns true if the session has exceeded the given max age.
func (s *Session) IsExpired(maxAge time.Duration) bool {
	return time.Since(s.CreatedAt) > maxAge
}

// IsIdle returns true if the session has been idle longer than the timeout.
func (s *Session) IsIdle(timeout time.Duration) bool {
	return time.Since(s.LastActiveAt) > timeout
}

// Manager handles session creation, lookup and cleanup.
type Manager struct {
	form    *edital.Adapted
	catalog *catalog.Store

	mu          sync.RWMutex
	sessions    map[string]*Session
	maxAge      time.Duration
	idleTimeout time.Duration
}

// NewManager creates a manager whose sessions edit form and open modals
// over store.
func NewManager(form *edital.Adapted, store *catalog.Store, maxAge, idleTimeout time.Duration) *Manager {
	return &Manager{
		form:        form,
		catalog:     store,
		sessions:    make(map[string]*Session),
		maxAge:      maxAge,
		idleTimeout: idleTimeout,
	}
}

// Form returns the adapted form sessions are built from.
func (m *Manager) Form() *edital.Adapted { return m.form }

// Create starts a session with an empty document and a closed modal.
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:           uuid.New().String(),
		CreatedAt:    now,
		LastActiveAt: now,
		Document:     edital.NewSession(m.form),
		Modal:        modal.NewController(m.catalog, nil),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get retrieves a session by ID. Returns nil if not found or expired.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	s.Lock()
	stale := s.IsExpired(m.maxAge) || s.IsIdle(m.idleTimeout)
	s.Unlock()
	if stale {
		m.Remove(id)
		return nil
	}
	return s
}

// Remove deletes a session.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Cleanup removes all expired and idle sessions and reports how many.
func (m *Manager) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		s.Lock()
		stale := s.IsExpired(m.maxAge) || s.IsIdle(m.idleTimeout)
		s.Unlock()
		if stale {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// CheckInterval is how often an open connection should confirm its session
// is still live: half the shorter of the two timeouts, between 10ms and a
// minute.
func (m *Manager) CheckInterval() time.Duration {
	d := min(m.maxAge, m.idleTimeout) / 2
	return min(max(d, 10*time.Millisecond), time.Minute)
}

// Sweep runs Cleanup every interval until ctx is done.
func (m *Manager) Sweep(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Cleanup()
		}
	}
}
