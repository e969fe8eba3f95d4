// Package memory provides in-process implementations of repository interfaces.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/refripanel/quote-go/internal/domain/entity"
	"github.com/refripanel/quote-go/internal/domain/repository"
)

type storedSession struct {
	session   entity.FormSession
	expiresAt time.Time
}

// SessionRepository keeps form sessions in a map guarded by a RWMutex.
// Sessions are copied in and out so callers never share state with the store.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]storedSession
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionRepository creates an in-memory store whose sessions expire
// ttl after their last write. A zero ttl keeps sessions forever.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[uuid.UUID]storedSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock replaces the store's time source. Used by tests.
func (r *SessionRepository) WithClock(now func() time.Time) *SessionRepository {
	r.now = now
	return r
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.FormSession) error {
	if session == nil {
		return repository.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live(session.ID); ok {
		return repository.ErrDuplicateSession
	}
	r.store(session)
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FormSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.live(id)
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	session := stored.session
	return &session, nil
}

func (r *SessionRepository) Update(ctx context.Context, session *entity.FormSession) error {
	if session == nil {
		return repository.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.live(session.ID)
	if !ok {
		return repository.ErrSessionNotFound
	}
	if stored.session.Version != session.Version-1 {
		return repository.ErrOptimisticLock
	}
	r.store(session)
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// Ping implements repository.SessionRepository. The map is always
// reachable, so only a finished context fails.
func (r *SessionRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of stored sessions, expired ones included.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops every expired session and returns how many were removed.
func (r *SessionRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, stored := range r.sessions {
		if r.expired(stored) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done.
func (r *SessionRepository) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// live must be called with the lock held.
func (r *SessionRepository) live(id uuid.UUID) (storedSession, bool) {
	stored, ok := r.sessions[id]
	if !ok || r.expired(stored) {
		return storedSession{}, false
	}
	return stored, true
}

func (r *SessionRepository) expired(stored storedSession) bool {
	return !stored.expiresAt.IsZero() && !r.now().Before(stored.expiresAt)
}

func (r *SessionRepository) store(session *entity.FormSession) {
	stored := storedSession{session: *session}
	if r.ttl > 0 {
		stored.expiresAt = r.now().Add(r.ttl)
	}
	r.sessions[session.ID] = stored
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
