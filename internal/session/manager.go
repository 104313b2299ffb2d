package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

// DefaultTTL is how long an idle session is kept
const DefaultTTL = 12 * time.Hour

// Manager maps session ids to their State
type Manager struct {
	clock     calendar.Clock
	publisher parking.Publisher
	ttl       time.Duration

	mu       sync.Mutex
	sessions map[string]*State
}

func NewManager(clock calendar.Clock, publisher parking.Publisher, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		clock:     clock,
		publisher: publisher,
		ttl:       ttl,
		sessions:  make(map[string]*State),
	}
}

// Resolve returns the session for id, creating a new one with a fresh id when
// id is unknown. created reports whether a new session was made.
func (m *Manager) Resolve(id string) (s *State, created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if existing, ok := m.sessions[id]; ok {
			return existing, false
		}
	}

	s = NewState(uuid.NewString(), m.clock, m.publisher)
	m.sessions[s.ID] = s
	slog.Debug("session created", slog.String("sessionId", s.ID))
	return s, true
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Prune drops sessions idle for longer than the TTL and returns how many were removed
func (m *Manager) Prune() int {
	cutoff := m.clock.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run prunes every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Prune(); n > 0 {
				slog.Info("idle sessions pruned", slog.Int("removed", n), slog.Int("remaining", m.Len()))
			}
		}
	}
}
