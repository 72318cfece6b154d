package ports

import (
	"context"
	"time"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

// SessionRepository holds the live map sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	// IdleSince returns the ids of sessions with no activity after cutoff.
	IdleSince(ctx context.Context, cutoff time.Time) ([]string, error)
	// DeleteIdle removes the session only if it still has no activity after cutoff and
	// reports whether it did.
	DeleteIdle(ctx context.Context, id string, cutoff time.Time) (bool, error)
	Count(ctx context.Context) (int, error)
}
