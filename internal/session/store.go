// Package session keeps one form controller per browser session in process
// memory and evicts sessions that have been idle for too long.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/socialchef/mise/internal/form"
	"github.com/socialchef/mise/internal/metrics"
)

type entry struct {
	controller *form.Controller
	lastSeen   time.Time
}

// Store maps session ids to controllers.
type Store struct {
	newController func() *form.Controller
	idleTTL       time.Duration
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewStore returns an empty store. newController is called once per new
// session; an idleTTL of zero disables eviction.
func NewStore(newController func() *form.Controller, idleTTL time.Duration) *Store {
	return &Store{
		newController: newController,
		idleTTL:       idleTTL,
		now:           time.Now,
		sessions:      make(map[string]*entry),
	}
}

// Get returns the controller for id and marks the session as seen.
func (s *Store) Get(id string) (*form.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.controller, true
}

// Detached returns a controller that belongs to no session. It renders the
// empty form for visitors that have not changed anything yet and is
// discarded after the request.
func (s *Store) Detached() *form.Controller {
	return s.newController()
}

// Create starts a new session and returns its id and controller.
func (s *Store) Create(ctx context.Context) (string, *form.Controller) {
	id := uuid.NewString()
	c := s.newController()

	s.mu.Lock()
	s.sessions[id] = &entry{controller: c, lastSeen: s.now()}
	s.mu.Unlock()

	metrics.SessionOpened(ctx)
	slog.DebugContext(ctx, "Session created", "session_id", id)
	return id, c
}

// Delete drops a session.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		metrics.SessionClosed(ctx)
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed. A session with a generation in flight is never removed.
func (s *Store) Sweep(ctx context.Context) int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	var expired []string
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) && !e.controller.State().Busy {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for range expired {
		metrics.SessionClosed(ctx)
	}
	if len(expired) > 0 {
		slog.InfoContext(ctx, "Expired idle sessions", "count", len(expired))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.idleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}
