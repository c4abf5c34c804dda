package ports

import (
	"context"
	"nyc-route-optimizer/internal/domain"
)

// Port: recent route searches grouped by a caller-supplied session id.
type SearchHistoryRepository interface {
	// Record a search as the newest entry, replacing an identical older one.
	AddSearch(ctx context.Context, sessionID string, entry domain.SearchEntry) error
	// Return up to limit entries, newest first.
	RecentSearches(ctx context.Context, sessionID string, limit int) ([]domain.SearchEntry, error)
}
