package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        place_id TEXT NOT NULL DEFAULT '',
        formatted_address TEXT NOT NULL,
        lat REAL NOT NULL,
        lng REAL NOT NULL
    );
	`

	createSearchHistoryQuery := `
	CREATE TABLE IF NOT EXISTS search_history (
        session_id TEXT NOT NULL,
        start_address TEXT NOT NULL,
        end_address TEXT NOT NULL,
        searched_at INTEGER NOT NULL,
        PRIMARY KEY (session_id, start_address, end_address)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_search_history_session_time
    ON search_history(session_id, searched_at);
	`

	return execSchema(db, []string{
		createGeocodeCacheQuery,
		createSearchHistoryQuery,
		createIndexQuery,
	})
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        place_id TEXT NOT NULL DEFAULT '',
        formatted_address TEXT NOT NULL,
        lat DOUBLE PRECISION NOT NULL,
        lng DOUBLE PRECISION NOT NULL
    );
	`

	createSearchHistoryQuery := `
	CREATE TABLE IF NOT EXISTS search_history (
        id BIGSERIAL PRIMARY KEY,
        session_id TEXT NOT NULL,
        start_address TEXT NOT NULL,
        end_address TEXT NOT NULL,
        searched_at TIMESTAMPTZ NOT NULL,
        UNIQUE (session_id, start_address, end_address)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_search_history_session_time
    ON search_history(session_id, searched_at DESC);
	`

	return execSchema(db, []string{
		createGeocodeCacheQuery,
		createSearchHistoryQuery,
		createIndexQuery,
	})
}

func execSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
