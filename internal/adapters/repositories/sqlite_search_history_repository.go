package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"nyc-route-optimizer/internal/domain"
	"strings"
	"time"
)

// SQLite-backed implementation of the SearchHistoryRepository port.
// Each session keeps at most Keep entries.
type SqliteSearchHistoryRepository struct {
	DB   *sql.DB
	Keep int
}

func NewSqliteSearchHistoryRepository(db *sql.DB, keep int) *SqliteSearchHistoryRepository {
	return &SqliteSearchHistoryRepository{DB: db, Keep: keep}
}

// Record a search, moving an identical older entry to the front.
func (s *SqliteSearchHistoryRepository) AddSearch(ctx context.Context, sessionID string, entry domain.SearchEntry) error {
	if s.DB == nil {
		return errors.New("sqlite search history: DB is nil")
	}
	if err := validateEntry(sessionID, entry); err != nil {
		return fmt.Errorf("add search: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add search: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insert := `
	INSERT OR REPLACE INTO search_history (
		session_id,
		start_address,
		end_address,
		searched_at
	)
	VALUES (?, ?, ?, ?);
	`
	if _, err := tx.ExecContext(ctx, insert, sessionID, entry.StartAddress, entry.EndAddress, entry.SearchedAt.UnixNano()); err != nil {
		return fmt.Errorf("add search: insert session_id=%q: %w", sessionID, err)
	}

	trim := `
	DELETE FROM search_history
	WHERE session_id = ?
		AND rowid NOT IN (
			SELECT rowid
			FROM search_history
			WHERE session_id = ?
			ORDER BY searched_at DESC, rowid DESC
			LIMIT ?
		);
	`
	if _, err := tx.ExecContext(ctx, trim, sessionID, sessionID, s.Keep); err != nil {
		return fmt.Errorf("add search: trim session_id=%q: %w", sessionID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add search: commit tx: %w", err)
	}

	return nil
}

// Return up to limit searches for the session, newest first.
func (s *SqliteSearchHistoryRepository) RecentSearches(ctx context.Context, sessionID string, limit int) ([]domain.SearchEntry, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite search history: DB is nil")
	}

	query := `
	SELECT
		start_address,
		end_address,
		searched_at
	FROM search_history
	WHERE session_id = ?
	ORDER BY searched_at DESC, rowid DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent searches: query search_history table: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.SearchEntry, 0, limit)
	for rows.Next() {
		var e domain.SearchEntry
		var nanos int64
		if err := rows.Scan(&e.StartAddress, &e.EndAddress, &nanos); err != nil {
			return nil, fmt.Errorf("recent searches: scan row: %w", err)
		}
		e.SearchedAt = time.Unix(0, nanos).UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent searches: row iteration: %w", err)
	}

	return entries, nil
}

func validateEntry(sessionID string, entry domain.SearchEntry) error {
	if strings.TrimSpace(sessionID) == "" {
		return errors.New("session id must not be empty")
	}
	if strings.TrimSpace(entry.StartAddress) == "" || strings.TrimSpace(entry.EndAddress) == "" {
		return errors.New("start and end addresses must not be empty")
	}
	if entry.SearchedAt.IsZero() {
		return errors.New("searched_at must be set")
	}
	return nil
}
