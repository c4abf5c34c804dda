package services

import (
	"context"
	"errors"
	"fmt"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/platform/obs"
	"nyc-route-optimizer/internal/ports"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxRoutes bounds the candidate set when no limit is configured.
const DefaultMaxRoutes = 5

// Number of searches kept per session.
const HistoryLimit = 10

type RouteRequest struct {
	StartAddress string
	EndAddress   string
	DepartAt     time.Time // zero means now
	TrafficModel domain.TrafficModel
	MaxRoutes    int    // 0 uses the suggester default
	SessionID    string // empty skips history
}

type RouteSuggestion struct {
	Start        domain.Place
	End          domain.Place
	DepartAt     time.Time
	TrafficModel domain.TrafficModel
	Routes       *domain.RouteSet
	Summary      RouteSummary
	Savings      *TimeSavings
}

// AddressError reports which endpoint of a request failed to resolve.
type AddressError struct {
	Field   string // "start" or "end"
	Address string
	Err     error
}

func (e *AddressError) Error() string {
	return e.Field + " address: " + e.Err.Error()
}

func (e *AddressError) Unwrap() error { return e.Err }

// RouteSuggester coordinates validation, geocoding, directions lookup, and ranking
// for one route request. All per-request state lives in the request and result
// values; the suggester itself is immutable after construction.
type RouteSuggester struct {
	geocoder   ports.Geocoder
	directions ports.DirectionsProvider
	history    ports.SearchHistoryRepository
	ranker     *Ranker
	area       domain.ServiceArea
	maxRoutes  int
	model      domain.TrafficModel
	now        func() time.Time
}

type SuggesterOption func(*RouteSuggester)

// WithHistory records each successful search for the request's session.
func WithHistory(repo ports.SearchHistoryRepository) SuggesterOption {
	return func(s *RouteSuggester) { s.history = repo }
}

func WithServiceArea(area domain.ServiceArea) SuggesterOption {
	return func(s *RouteSuggester) { s.area = area }
}

func WithMaxRoutes(n int) SuggesterOption {
	return func(s *RouteSuggester) { s.maxRoutes = n }
}

// WithTrafficModel sets the model used when a request names none.
func WithTrafficModel(m domain.TrafficModel) SuggesterOption {
	return func(s *RouteSuggester) { s.model = m }
}

func WithClock(now func() time.Time) SuggesterOption {
	return func(s *RouteSuggester) { s.now = now }
}

func NewRouteSuggester(
	geocoder ports.Geocoder,
	directions ports.DirectionsProvider,
	ranker *Ranker,
	opts ...SuggesterOption,
) (*RouteSuggester, error) {
	if geocoder == nil || directions == nil || ranker == nil {
		return nil, errors.New("new route suggester: geocoder, directions and ranker are required")
	}

	s := &RouteSuggester{
		geocoder:   geocoder,
		directions: directions,
		ranker:     ranker,
		area:       domain.DefaultNYCArea,
		maxRoutes:  DefaultMaxRoutes,
		model:      domain.TrafficModelBestGuess,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.maxRoutes < 1 {
		return nil, fmt.Errorf("new route suggester: max routes %d: %w", s.maxRoutes, domain.ErrConfiguration)
	}
	if err := s.area.Validate(); err != nil {
		return nil, fmt.Errorf("new route suggester: %w", err)
	}
	if _, err := domain.ParseTrafficModel(string(s.model)); err != nil {
		return nil, fmt.Errorf("new route suggester: %w: %w", domain.ErrConfiguration, err)
	}

	return s, nil
}

func (s *RouteSuggester) Suggest(ctx context.Context, req RouteRequest) (_ *RouteSuggestion, err error) {
	defer obs.Time(ctx, "suggest.Routes")(&err)

	startAddr := SanitizeAddress(req.StartAddress)
	endAddr := SanitizeAddress(req.EndAddress)
	if err := ValidateRouteEndpoints(startAddr, endAddr); err != nil {
		return nil, fmt.Errorf("suggest routes: %w", err)
	}

	limit := s.maxRoutes
	if req.MaxRoutes != 0 {
		if req.MaxRoutes < 1 || req.MaxRoutes > s.maxRoutes {
			return nil, fmt.Errorf("suggest routes: %w",
				domain.Invalidf("max_routes must be between 1 and %d", s.maxRoutes))
		}
		limit = req.MaxRoutes
	}

	model := req.TrafficModel
	if model == "" {
		model = s.model
	}

	departAt := req.DepartAt
	if departAt.IsZero() {
		departAt = s.now()
	}

	// Both endpoints are independent lookups; resolve them concurrently.
	var start, end domain.Place
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.resolve(gctx, startAddr)
		if err != nil {
			return &AddressError{Field: "start", Address: startAddr, Err: err}
		}
		start = p
		return nil
	})
	g.Go(func() error {
		p, err := s.resolve(gctx, endAddr)
		if err != nil {
			return &AddressError{Field: "end", Address: endAddr, Err: err}
		}
		end = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("suggest routes: %w", err)
	}

	candidates, err := s.directions.Routes(ctx, ports.DirectionsQuery{
		Origin:       start.FormattedAddress,
		Destination:  end.FormattedAddress,
		DepartAt:     req.DepartAt,
		TrafficModel: model,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest routes: get directions: %w", err)
	}

	// Bound the candidate set in provider order before ranking.
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	set, err := s.ranker.Rank(candidates)
	if err != nil {
		return nil, fmt.Errorf("suggest routes: %w", err)
	}

	out := &RouteSuggestion{
		Start:        start,
		End:          end,
		DepartAt:     departAt,
		TrafficModel: model,
		Routes:       set,
		Summary:      SummarizeRoutes(set),
	}
	if savings, ok := CalculateTimeSavings(set); ok {
		out.Savings = &savings
	}

	s.recordSearch(ctx, req.SessionID, domain.SearchEntry{
		StartAddress: startAddr,
		EndAddress:   endAddr,
		SearchedAt:   s.now(),
	})

	return out, nil
}

// resolve geocodes an address and enforces the service area.
func (s *RouteSuggester) resolve(ctx context.Context, address string) (domain.Place, error) {
	p, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return domain.Place{}, fmt.Errorf("geocode %q: %w", address, err)
	}

	if !s.area.Contains(p.Location) {
		return domain.Place{}, fmt.Errorf(
			"%q resolves to %.5f,%.5f: %w",
			address, p.Location.Lat, p.Location.Lng, domain.ErrOutsideServiceArea,
		)
	}

	if p.FormattedAddress == "" {
		p.FormattedAddress = address
	}
	return p, nil
}

// History is best effort; a failed write never fails the route request.
func (s *RouteSuggester) recordSearch(ctx context.Context, sessionID string, entry domain.SearchEntry) {
	if s.history == nil || sessionID == "" {
		return
	}

	if err := s.history.AddSearch(ctx, sessionID, entry); err != nil {
		zap.L().Warn("search history write failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}

// RecentSearches returns the session's history, or nil when history is disabled.
func (s *RouteSuggester) RecentSearches(ctx context.Context, sessionID string) ([]domain.SearchEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	if sessionID == "" {
		return nil, fmt.Errorf("recent searches: %w", domain.Invalidf("session id is required"))
	}

	entries, err := s.history.RecentSearches(ctx, sessionID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	return entries, nil
}
