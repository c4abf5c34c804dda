package ny511

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"nyc-route-optimizer/internal/adapters/cache"
	"nyc-route-optimizer/internal/domain"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, rc *cache.MemoryResponseCache) *Client {
	t.Helper()

	var c *Client
	var err error
	if rc != nil {
		c, err = NewClient("secret", baseURL, time.Minute, rc)
	} else {
		c, err = NewClient("secret", baseURL, time.Minute, nil)
	}
	require.NoError(t, err)
	c.retryBackoff = time.Millisecond
	return c
}

func TestEventsAcceptsBareList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/getevents", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		fmt.Fprint(w, `[
			{"roadwayName":"I-278","headlineDescription":"Crash","severity":"Major",
			 "starttime":"10:00","endtime":"11:00","latitude":40.70,"longitude":-73.99},
			{"latitude":"not-a-number","longitude":"-73.9"}
		]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)

	events, err := c.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "I-278", events[0].Road)
	assert.Equal(t, "Major", events[0].Severity)
	require.NotNil(t, events[0].Location)
	assert.InDelta(t, 40.70, events[0].Location.Lat, 1e-9)

	assert.Equal(t, "Unknown Road", events[1].Road)
	assert.Equal(t, "No description", events[1].Description)
	assert.Equal(t, "N/A", events[1].StartTime)
	assert.Nil(t, events[1].Location)
}

func TestEventsAcceptsEnvelopeAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"events":[{"roadwayName":"FDR Drive","latitude":"40.75","longitude":"-73.97"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, cache.NewMemoryResponseCache(4))

	for range 3 {
		events, err := c.Events(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "FDR Drive", events[0].Road)
		require.NotNil(t, events[0].Location)
	}
	assert.EqualValues(t, 1, hits.Load())
}

func TestEventsRetriesTransientFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)

	events, err := c.Events(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.EqualValues(t, 3, hits.Load())
}

func TestEventsDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)

	_, err := c.Events(context.Background())
	var fe *feedError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusUnauthorized, fe.Status)
	assert.Equal(t, "bad key", fe.Message)
	assert.ErrorIs(t, err, domain.ErrProviderDenied)
	assert.EqualValues(t, 1, hits.Load())
}

func TestEventsHonorsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Events(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("", "", time.Minute, nil)
	assert.Error(t, err)
}

func TestEventsWaitsForRetryAfter(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	// Retry-After must replace the backoff, otherwise the deadline fires first.
	c.retryBackoff = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.Events(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, hits.Load())
}

func TestEventsGivesUpOnLongRetryAfter(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"Message":"Rate limit exceeded"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)

	_, err := c.Events(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderQuota)

	var fe *feedError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Rate limit exceeded", fe.Message)
	assert.Equal(t, 2*time.Minute, fe.RetryAfter)
	assert.EqualValues(t, 1, hits.Load())
}

func TestEventsReportsMessageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Message":"Invalid API Key."}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)

	events, err := c.Events(context.Background())
	assert.Nil(t, events)
	assert.ErrorIs(t, err, domain.ErrProviderDenied)
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)

	cases := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"", 0, false},
		{"soon", 0, false},
		{"0", 0, true},
		{"7", 7 * time.Second, true},
		{"-3", 0, true},
		{"Fri, 14 Mar 2025 08:30:30 GMT", 30 * time.Second, true},
		{"Fri, 14 Mar 2025 08:29:00 GMT", 0, true},
	}
	for _, tc := range cases {
		got, ok := parseRetryAfter(tc.in, now)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
}
