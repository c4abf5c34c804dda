package ny511

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"nyc-route-optimizer/internal/domain"
	"strconv"
	"strings"
	"time"
)

// feedError is a failure reported by the 511NY API, either as an HTTP status
// or as a message object in place of the event list.
type feedError struct {
	Status        int
	Message       string
	RetryAfter    time.Duration
	hasRetryAfter bool
}

func (e *feedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("511NY status %d", e.Status)
	}
	return fmt.Sprintf("511NY status %d: %s", e.Status, e.Message)
}

// Unwrap exposes the domain class so handlers can map it to a status.
func (e *feedError) Unwrap() error {
	switch {
	case e.Status == http.StatusTooManyRequests:
		return domain.ErrProviderQuota
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return domain.ErrProviderDenied
	case strings.Contains(strings.ToLower(e.Message), "api key"):
		return domain.ErrProviderDenied
	}
	return nil
}

func (e *feedError) transient() bool {
	switch e.Status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// feedMessage is the shape 511NY uses for error bodies. Both casings occur.
type feedMessage struct {
	Message      string `json:"Message"`
	ErrorMessage string `json:"error"`
}

func (m feedMessage) text() string {
	return strings.TrimSpace(m.Message + " " + m.ErrorMessage)
}

func newFeedError(resp *http.Response) *feedError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	fe := &feedError{Status: resp.StatusCode}
	fe.RetryAfter, fe.hasRetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())

	var m feedMessage
	if json.Unmarshal(b, &m) == nil && m.text() != "" {
		fe.Message = m.text()
	} else {
		fe.Message = strings.TrimSpace(string(b))
	}
	return fe
}

// parseRetryAfter accepts delta seconds or an HTTP date; ok is false when the
// header is absent or unparseable. Past dates and negative values clamp to 0.
func parseRetryAfter(v string, now time.Time) (_ time.Duration, ok bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(max(secs, 0)) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		return max(t.Sub(now), 0), true
	}
	return 0, false
}

// fetchEvents performs the events GET, retrying network errors, 429 and 5xx.
// A 429 waits for the feed's Retry-After when it is within maxRetryAfter and
// gives up immediately otherwise. The caller closes the returned body.
func (c *Client) fetchEvents(ctx context.Context) (io.ReadCloser, error) {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("format", "json")
	q.Set("type", "event")
	endpoint := c.baseURL + "/api/getevents?" + q.Encode()

	backoff := c.retryBackoff
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		wait := backoff
		resp, err := c.session.Do(req)
		switch {
		case err == nil && resp.StatusCode < 400:
			return resp.Body, nil
		case err == nil:
			fe := newFeedError(resp)
			resp.Body.Close()
			lastErr = fe
			if !fe.transient() {
				return nil, fe
			}
			if fe.Status == http.StatusTooManyRequests && fe.hasRetryAfter {
				if fe.RetryAfter > c.maxRetryAfter {
					return nil, fe
				}
				wait = fe.RetryAfter
			}
		default:
			lastErr = err
			var netErr net.Error
			if !errors.As(err, &netErr) {
				return nil, err
			}
		}

		if attempt == c.maxAttempts {
			break
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return nil, lastErr
}
