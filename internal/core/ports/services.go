package ports

import (
	"context"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

// EventPublisher broadcasts map state changes to a message broker.
type EventPublisher interface {
	PublishMapEvent(ctx context.Context, event *domain.MapEvent) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
