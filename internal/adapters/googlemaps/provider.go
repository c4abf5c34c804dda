package googlemaps

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/ports"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

type Config struct {
	APIKey string
	// BaseURL overrides Google's endpoints. Empty uses the public API.
	BaseURL    string
	Area       domain.ServiceArea
	Center     domain.Coordinates
	CacheTTL   time.Duration
	HTTPClient *http.Client
}

// Provider implements DirectionsProvider, Geocoder and PlaceSuggester on top of
// the Google Maps web services.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Expiring caching of directions and autocomplete responses
//   - Mapping provider status codes onto domain errors
//
// Both caches are optional. The provider is safe for concurrent use.
type Provider struct {
	client       *maps.Client
	area         domain.ServiceArea
	center       domain.Coordinates
	ttl          time.Duration
	responses    ports.ResponseCache
	geocodeCache ports.GeocodeCache
	now          func() time.Time
}

func NewProvider(
	cfg Config,
	responses ports.ResponseCache,
	geocodeCache ports.GeocodeCache,
) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("google maps api key is empty: %w", domain.ErrConfiguration)
	}
	if err := cfg.Area.Validate(); err != nil {
		return nil, fmt.Errorf("new google maps provider: %w", err)
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("new google maps provider: cache ttl must be positive: %w", domain.ErrConfiguration)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("new google maps client: %w", err)
	}

	return &Provider{
		client:       client,
		area:         cfg.Area,
		center:       cfg.Center,
		ttl:          cfg.CacheTTL,
		responses:    responses,
		geocodeCache: geocodeCache,
		now:          time.Now,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace and case.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// fingerprint derives a fixed-length cache key from the request parts.
func fingerprint(kind string, parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return kind + ":" + hex.EncodeToString(h[:])
}

func toLatLng(c domain.Coordinates) maps.LatLng {
	return maps.LatLng{Lat: c.Lat, Lng: c.Lng}
}

func fromLatLng(l maps.LatLng) domain.Coordinates {
	return domain.Coordinates{Lat: l.Lat, Lng: l.Lng}
}

func (p *Provider) bounds() *maps.LatLngBounds {
	return &maps.LatLngBounds{
		NorthEast: maps.LatLng{Lat: p.area.North, Lng: p.area.East},
		SouthWest: maps.LatLng{Lat: p.area.South, Lng: p.area.West},
	}
}

// Statuses the maps client surfaces as "maps: STATUS - message".
const (
	statusZeroResults  = "ZERO_RESULTS"
	statusNotFound     = "NOT_FOUND"
	statusOverLimit    = "OVER_QUERY_LIMIT"
	statusOverDaily    = "OVER_DAILY_LIMIT"
	statusDenied       = "REQUEST_DENIED"
	statusInvalid      = "INVALID_REQUEST"
	statusMaxWaypoints = "MAX_WAYPOINTS_EXCEEDED"
	statusMaxRouteLen  = "MAX_ROUTE_LENGTH_EXCEEDED"
)

func hasStatus(err error, status string) bool {
	return err != nil && strings.Contains(err.Error(), status)
}

// providerError maps a maps client error onto the domain taxonomy.
func providerError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrAddressNotFound),
		errors.Is(err, domain.ErrProviderQuota),
		errors.Is(err, domain.ErrProviderDenied):
		return fmt.Errorf("%s: %w", op, err)
	case hasStatus(err, statusOverLimit), hasStatus(err, statusOverDaily):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrProviderQuota, err)
	case hasStatus(err, statusDenied):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrProviderDenied, err)
	case hasStatus(err, statusNotFound):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrAddressNotFound, err)
	case hasStatus(err, statusInvalid), hasStatus(err, statusMaxWaypoints), hasStatus(err, statusMaxRouteLen):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
