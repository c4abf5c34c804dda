package googlemaps

import (
	"context"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/platform/obs"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"googlemaps.github.io/maps"
)

const (
	minAutocompleteInput = 2
	maxSuggestions       = 10
	autocompleteRadius   = 50000 // meters around the center
	detailsConcurrency   = 4
)

// Autocomplete returns up to ten predictions whose place lies inside the
// service area, in provider order. Inputs shorter than two characters yield
// no suggestions.
func (p *Provider) Autocomplete(ctx context.Context, input string) (_ []domain.PlaceSuggestion, err error) {
	defer obs.Time(ctx, "gmaps.Autocomplete")(&err)

	input = strings.TrimSpace(input)
	if len([]rune(input)) < minAutocompleteInput {
		return []domain.PlaceSuggestion{}, nil
	}

	key := fingerprint("autocomplete", normalize(input))
	if p.responses != nil {
		var cached []domain.PlaceSuggestion
		ok, err := p.responses.Get(ctx, key, &cached)
		if err != nil {
			zap.L().Warn("autocomplete cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	center := toLatLng(p.center)
	resp, err := p.client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{
		Input:    input,
		Location: &center,
		Radius:   autocompleteRadius,
	})
	if hasStatus(err, statusZeroResults) {
		return []domain.PlaceSuggestion{}, nil
	}
	if err != nil {
		return nil, providerError("autocomplete", err)
	}

	// Resolve each prediction's location; predictions whose details fail are dropped.
	inArea := make([]bool, len(resp.Predictions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailsConcurrency)
	for i, pred := range resp.Predictions {
		g.Go(func() error {
			loc, err := p.placeLocation(gctx, pred.PlaceID)
			if err != nil {
				zap.L().Debug("place details failed", zap.String("place_id", pred.PlaceID), zap.Error(err))
				return nil
			}
			inArea[i] = p.area.Contains(loc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.PlaceSuggestion, 0, min(len(resp.Predictions), maxSuggestions))
	for i, pred := range resp.Predictions {
		if !inArea[i] {
			continue
		}
		out = append(out, domain.PlaceSuggestion{PlaceID: pred.PlaceID, Description: pred.Description})
		if len(out) == maxSuggestions {
			break
		}
	}

	if p.responses != nil {
		if err := p.responses.Set(ctx, key, out, p.ttl); err != nil {
			zap.L().Warn("autocomplete cache write failed", zap.Error(err))
		}
	}

	return out, nil
}

func (p *Provider) placeLocation(ctx context.Context, placeID string) (domain.Coordinates, error) {
	res, err := p.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskGeometry,
			maps.PlaceDetailsFieldMaskFormattedAddress,
		},
	})
	if err != nil {
		return domain.Coordinates{}, providerError("place details "+placeID, err)
	}
	return fromLatLng(res.Geometry.Location), nil
}
