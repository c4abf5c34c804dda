package ny511

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/platform/obs"
	"nyc-route-optimizer/internal/ports"
	"time"

	"go.uber.org/zap"
)

const eventsCacheKey = "ny511:events"

// Client implements TrafficEventSource using the 511NY developer API.
// The client is safe for concurrent use.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
	ttl     time.Duration
	cache   ports.ResponseCache

	maxAttempts   int
	retryBackoff  time.Duration // doubled after each failed attempt
	maxRetryAfter time.Duration // longer rate-limit waits fail fast
}

// NewClient returns a 511NY client. cache may be nil.
func NewClient(apiKey, baseURL string, ttl time.Duration, cache ports.ResponseCache) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("511NY api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://511ny.org"
	}

	return &Client{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
		ttl:     ttl,
		cache:   cache,

		maxAttempts:   4,
		retryBackoff:  200 * time.Millisecond,
		maxRetryAfter: 10 * time.Second,
	}, nil
}

// Events returns current traffic events in feed order.
func (c *Client) Events(ctx context.Context) (_ []domain.TrafficEvent, err error) {
	defer obs.Time(ctx, "ny511.Events")(&err)

	if c.cache != nil {
		var cached []domain.TrafficEvent
		ok, err := c.cache.Get(ctx, eventsCacheKey, &cached)
		if err != nil {
			zap.L().Warn("traffic events cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	body, err := c.fetchEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("get 511NY events: %w", err)
	}
	defer body.Close()

	raw, err := decodeEvents(body)
	if err != nil {
		return nil, fmt.Errorf("get 511NY events: %w", err)
	}

	events := make([]domain.TrafficEvent, 0, len(raw))
	for _, e := range raw {
		events = append(events, e.toDomain())
	}

	if c.cache != nil && c.ttl > 0 {
		if err := c.cache.Set(ctx, eventsCacheKey, events, c.ttl); err != nil {
			zap.L().Warn("traffic events cache write failed", zap.Error(err))
		}
	}

	return events, nil
}
