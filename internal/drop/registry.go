package drop

import (
	"sync"
	"time"

	"github.com/fancards/fancards-go/internal/metrics"
)

// Registry tracks active drop sessions in memory. Sessions are removed
// by Sweep once their expiry plus a grace period has passed; the grace
// period keeps just-finished sessions viewable.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Put registers a session.
func (r *Registry) Put(session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	metrics.SessionsActive.Set(float64(len(r.sessions)))
}

// Get returns the session with the given ID.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

// Len returns the number of tracked sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions whose expiry plus grace period has passed and
// returns how many were removed. Sessions that expired with unclaimed
// slots are counted as expired drops.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if !now.After(session.ExpiresAt.Add(SweepGracePeriod)) {
			continue
		}
		if session.UnclaimedCount() > 0 {
			metrics.DropsExpired.Inc()
		}
		delete(r.sessions, id)
		removed++
	}
	metrics.SessionsActive.Set(float64(len(r.sessions)))
	return removed
}
