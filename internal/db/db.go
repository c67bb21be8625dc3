// Package db provides PostgreSQL storage for compliance submission history.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the submissions table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS submissions (
			submission_id        TEXT PRIMARY KEY,
			session_id           TEXT NOT NULL,
			brand_name           TEXT NOT NULL DEFAULT '',
			brand_website        TEXT NOT NULL DEFAULT '',
			use_case             TEXT NOT NULL DEFAULT '',
			compliance_score     INT NOT NULL,
			compliance_status    TEXT NOT NULL,
			violations_count     INT NOT NULL,
			submission_data      JSONB NOT NULL,
			compliance_result    JSONB NOT NULL,
			verification_status  TEXT NOT NULL DEFAULT 'not_run',
			verification_issues  BOOLEAN NOT NULL DEFAULT FALSE,
			verification_json    JSONB,
			created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS submissions_session_created_idx
			ON submissions (session_id, created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
