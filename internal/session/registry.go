// Package session keeps per-guest state: each guest gets one floor plan and
// one cart that live until the guest has been idle for the configured TTL.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-booking/internal/cart"
	"github.com/iliyamo/restaurant-booking/internal/seating"
)

// Session is one guest's state.
type Session struct {
	ID    string
	Seats *seating.Board
	Cart  *cart.Store

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen is the time of the most recent access.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Registry maps session ids to sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger
}

// NewRegistry returns an empty registry.  A ttl of zero disables eviction.
func NewRegistry(ttl time.Duration, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

func (r *Registry) newSession(id string, now time.Time) *Session {
	s := &Session{
		ID:       id,
		Seats:    seating.NewBoard(),
		Cart:     cart.NewStore(),
		lastSeen: now,
	}
	log := r.log.With(zap.String("session_id", id))
	s.Cart.Subscribe(func(snap cart.Snapshot) {
		log.Debug("cart changed", zap.Int("lines", len(snap.Lines)), zap.Int("items", snap.ItemCount), zap.Int("total", snap.Total))
	})
	return s
}

// Create starts a new session with a random id.
func (r *Registry) Create() *Session {
	now := r.now()
	s := r.newSession(uuid.NewString(), now)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	r.log.Debug("session created", zap.String("session_id", s.ID))
	return s
}

// Get returns the session for id, creating it when absent (for example
// after a restart, while the guest's token is still valid).
func (r *Registry) Get(id string) *Session {
	now := r.now()
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		s = r.newSession(id, now)
		r.sessions[id] = s
	}
	r.mu.Unlock()
	if ok {
		s.touch(now)
	}
	return s
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the ttl and returns how many
// were removed.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	if r.ttl <= 0 || every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				r.log.Info("expired idle sessions", zap.Int("removed", n), zap.Int("live", r.Len()))
			}
		}
	}
}
