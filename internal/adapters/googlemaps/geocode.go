package googlemaps

import (
	"context"
	"fmt"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/platform/obs"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// Geocode resolves an address restricted to New York State and biased to the
// service area. The first result inside the area wins.
func (p *Provider) Geocode(ctx context.Context, address string) (_ domain.Place, err error) {
	defer obs.Time(ctx, "gmaps.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Place{}, fmt.Errorf("geocode: address must be non-empty: %w", domain.ErrInvalidInput)
	}

	// Check persistent geocode cache before issuing external API calls.
	if p.geocodeCache != nil {
		hits, err := p.geocodeCache.GetMany(ctx, []string{norm})
		if err != nil {
			zap.L().Warn("geocode cache read failed", zap.String("address", norm), zap.Error(err))
		} else if place, ok := hits[norm]; ok {
			return place, nil
		}
	}

	results, err := p.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
		Components: map[maps.Component]string{
			maps.ComponentCountry:            "US",
			maps.ComponentAdministrativeArea: "NY",
		},
		Bounds: p.bounds(),
	})
	if hasStatus(err, statusZeroResults) || (err == nil && len(results) == 0) {
		return domain.Place{}, fmt.Errorf("geocode %q: %w", address, domain.ErrAddressNotFound)
	}
	if err != nil {
		return domain.Place{}, providerError(fmt.Sprintf("geocode %q", address), err)
	}

	place, ok := p.firstInArea(results)
	if !ok {
		loc := results[0].Geometry.Location
		return domain.Place{}, fmt.Errorf(
			"geocode %q resolves to %.5f,%.5f: %w",
			address, loc.Lat, loc.Lng, domain.ErrOutsideServiceArea,
		)
	}

	if p.geocodeCache != nil {
		if err := p.geocodeCache.PutMany(ctx, map[string]domain.Place{norm: place}); err != nil {
			zap.L().Warn("geocode cache write failed", zap.String("address", norm), zap.Error(err))
		}
	}

	return place, nil
}

func (p *Provider) firstInArea(results []maps.GeocodingResult) (domain.Place, bool) {
	for _, r := range results {
		loc := fromLatLng(r.Geometry.Location)
		if !p.area.Contains(loc) {
			continue
		}
		return domain.Place{
			PlaceID:          r.PlaceID,
			FormattedAddress: r.FormattedAddress,
			Location:         loc,
		}, true
	}
	return domain.Place{}, false
}
