package ports

import (
	"context"
	"nyc-route-optimizer/internal/domain"
	"time"
)

// A request for driving alternatives between two addresses.
type DirectionsQuery struct {
	Origin       string
	Destination  string
	DepartAt     time.Time // zero means now
	TrafficModel domain.TrafficModel
}

// Contract for retrieving route alternatives with traffic-adjusted durations.
type DirectionsProvider interface {
	// Return the provider's alternatives in provider order. No route is an empty
	// slice, not an error.
	Routes(ctx context.Context, q DirectionsQuery) ([]domain.RouteCandidate, error)
}
