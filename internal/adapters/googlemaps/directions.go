package googlemaps

import (
	"context"
	"fmt"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/platform/obs"
	"nyc-route-optimizer/internal/ports"
	"strconv"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// Routes returns driving alternatives with traffic-adjusted durations.
// Responses are cached per origin, destination, traffic model and departure
// window; a provider ZERO_RESULTS is an empty slice.
func (p *Provider) Routes(ctx context.Context, q ports.DirectionsQuery) (_ []domain.RouteCandidate, err error) {
	defer obs.Time(ctx, "gmaps.Routes")(&err)

	origin := normalize(q.Origin)
	destination := normalize(q.Destination)
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("get directions: origin and destination must be non-empty: %w", domain.ErrInvalidInput)
	}

	model := q.TrafficModel
	if model == "" {
		model = domain.TrafficModelBestGuess
	}

	departure := "now"
	window := p.now()
	if !q.DepartAt.IsZero() {
		departure = strconv.FormatInt(q.DepartAt.Unix(), 10)
		window = q.DepartAt
	}

	key := fingerprint("directions",
		origin,
		destination,
		string(model),
		strconv.FormatInt(window.Truncate(p.ttl).Unix(), 10),
	)

	if p.responses != nil {
		var cached []domain.RouteCandidate
		ok, err := p.responses.Get(ctx, key, &cached)
		if err != nil {
			zap.L().Warn("directions cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	routes, _, err := p.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:        q.Origin,
		Destination:   q.Destination,
		Mode:          maps.TravelModeDriving,
		Alternatives:  true,
		Units:         maps.UnitsMetric,
		DepartureTime: departure,
		TrafficModel:  maps.TrafficModel(model),
	})
	if hasStatus(err, statusZeroResults) {
		return []domain.RouteCandidate{}, nil
	}
	if err != nil {
		return nil, providerError("get directions", err)
	}

	candidates := make([]domain.RouteCandidate, 0, len(routes))
	for _, r := range routes {
		if len(r.Legs) == 0 {
			continue
		}
		candidates = append(candidates, toCandidate(r))
	}

	if p.responses != nil {
		if err := p.responses.Set(ctx, key, candidates, p.ttl); err != nil {
			zap.L().Warn("directions cache write failed", zap.Error(err))
		}
	}

	return candidates, nil
}

// toCandidate flattens a single-leg route. Without a traffic estimate the
// free-flow duration stands in.
func toCandidate(r maps.Route) domain.RouteCandidate {
	leg := r.Legs[0]

	traffic := leg.DurationInTraffic
	if traffic == 0 {
		traffic = leg.Duration
	}

	steps := make([]domain.RouteStep, 0, len(leg.Steps))
	for _, s := range leg.Steps {
		steps = append(steps, domain.RouteStep{
			Instruction:     s.HTMLInstructions,
			DistanceMeters:  s.Distance.Meters,
			DurationSeconds: int(s.Duration.Seconds()),
			StartLocation:   fromLatLng(s.StartLocation),
			EndLocation:     fromLatLng(s.EndLocation),
		})
	}

	return domain.RouteCandidate{
		Summary:                  r.Summary,
		DistanceMeters:           leg.Distance.Meters,
		DurationSeconds:          int(leg.Duration.Seconds()),
		DurationInTrafficSeconds: int(traffic.Seconds()),
		Polyline:                 r.OverviewPolyline.Points,
		StartAddress:             leg.StartAddress,
		EndAddress:               leg.EndAddress,
		StartLocation:            fromLatLng(leg.StartLocation),
		EndLocation:              fromLatLng(leg.EndLocation),
		Warnings:                 append([]string(nil), r.Warnings...),
		Steps:                    steps,
	}
}
