// Package sqlite provides SQLite-based storage for report history and
// audit runs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time is all SQLite supports, so keep one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	pragmas := []string{
		// Wait out lock contention instead of failing immediately with
		// "database is locked".
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	// WAL trades -wal and -shm sidecar files for much faster writes. An
	// audit inserts one report per page, so the writes dominate. In-memory
	// databases don't support it.
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to configure database: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
// The report column stores the full report JSON verbatim, so a stored
// report re-renders byte-identically.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS audits (
			id TEXT PRIMARY KEY,
			site_url TEXT NOT NULL,
			page_count INTEGER NOT NULL DEFAULT 0,
			avg_seo_score INTEGER NOT NULL DEFAULT 0,
			avg_geo_score INTEGER NOT NULL DEFAULT 0,
			started_at TEXT NOT NULL,
			completed_at TEXT
		);

		CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			audit_id TEXT REFERENCES audits(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			content_hash TEXT NOT NULL DEFAULT '',
			seo_score INTEGER NOT NULL DEFAULT 0,
			geo_score INTEGER NOT NULL DEFAULT 0,
			report TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_reports_audit_id ON reports(audit_id);
		CREATE INDEX IF NOT EXISTS idx_reports_url ON reports(url);
	`

	_, err := db.db.Exec(schema)
	return err
}
