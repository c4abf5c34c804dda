package ports

import (
	"context"
	"nyc-route-optimizer/internal/domain"
)

// Contract for resolving a free-form address to a location.
type Geocoder interface {
	// Return the best match, or an error wrapping domain.ErrAddressNotFound.
	Geocode(ctx context.Context, address string) (domain.Place, error)
}

// Contract for address autocomplete.
type PlaceSuggester interface {
	Autocomplete(ctx context.Context, input string) ([]domain.PlaceSuggestion, error)
}
