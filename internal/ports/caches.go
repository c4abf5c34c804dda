package ports

import (
	"context"
	"nyc-route-optimizer/internal/domain"
	"time"
)

// Expiring cache for provider responses keyed by request fingerprint.
type ResponseCache interface {
	// Decode the cached value for key into dst. ok is false on a miss.
	Get(ctx context.Context, key string, dst any) (ok bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Persistent cache mapping normalized addresses to geocoded places.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Place, error)
	PutMany(ctx context.Context, places map[string]domain.Place) error
}
