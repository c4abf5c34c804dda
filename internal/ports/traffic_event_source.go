package ports

import (
	"context"
	"nyc-route-optimizer/internal/domain"
)

// Contract for live traffic incident feeds.
type TrafficEventSource interface {
	Events(ctx context.Context) ([]domain.TrafficEvent, error)
}
