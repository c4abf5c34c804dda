package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"nyc-route-optimizer/internal/domain"
)

// Postgres-backed implementation of the SearchHistoryRepository port.
type SQLSearchHistoryRepository struct {
	DB   *sql.DB
	Keep int
}

func NewSQLSearchHistoryRepository(db *sql.DB, keep int) *SQLSearchHistoryRepository {
	return &SQLSearchHistoryRepository{DB: db, Keep: keep}
}

func (s *SQLSearchHistoryRepository) AddSearch(ctx context.Context, sessionID string, entry domain.SearchEntry) error {
	if s.DB == nil {
		return errors.New("sql search history: DB is nil")
	}
	if err := validateEntry(sessionID, entry); err != nil {
		return fmt.Errorf("add search: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add search: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO search_history (session_id, start_address, end_address, searched_at)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (session_id, start_address, end_address) DO UPDATE
	SET searched_at = EXCLUDED.searched_at;
	`, sessionID, entry.StartAddress, entry.EndAddress, entry.SearchedAt); err != nil {
		return fmt.Errorf("add search: upsert session_id=%q: %w", sessionID, err)
	}

	if _, err := tx.ExecContext(ctx, `
	DELETE FROM search_history
	WHERE session_id = $1
		AND id NOT IN (
			SELECT id
			FROM search_history
			WHERE session_id = $1
			ORDER BY searched_at DESC, id DESC
			LIMIT $2
		);
	`, sessionID, s.Keep); err != nil {
		return fmt.Errorf("add search: trim session_id=%q: %w", sessionID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add search: commit tx: %w", err)
	}

	return nil
}

func (s *SQLSearchHistoryRepository) RecentSearches(ctx context.Context, sessionID string, limit int) ([]domain.SearchEntry, error) {
	if s.DB == nil {
		return nil, errors.New("sql search history: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT start_address, end_address, searched_at
    FROM search_history
    WHERE session_id = $1
    ORDER BY searched_at DESC, id DESC
    LIMIT $2;
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent searches: query search_history table: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.SearchEntry, 0, limit)
	for rows.Next() {
		var e domain.SearchEntry
		if err := rows.Scan(&e.StartAddress, &e.EndAddress, &e.SearchedAt); err != nil {
			return nil, fmt.Errorf("recent searches: scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent searches: row iteration: %w", err)
	}

	return entries, nil
}
