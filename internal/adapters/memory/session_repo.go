package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

// SessionRepo implements ports.SessionRepository in process memory.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewSessionRepo creates an empty repository.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[s.ID]; exists {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

func (r *SessionRepo) IdleSince(ctx context.Context, cutoff time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// DeleteIdle waits for any event in flight on the session, so activity that raced
// with the idle scan keeps the session alive.
func (r *SessionRepo) DeleteIdle(ctx context.Context, id string, cutoff time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return false, nil
	}
	s.Lock()
	idle := s.LastSeen().Before(cutoff)
	s.Unlock()
	if !idle {
		return false, nil
	}
	delete(r.sessions, id)
	return true, nil
}

func (r *SessionRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}
