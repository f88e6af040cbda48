// Package db provides PostgreSQL persistence for match results and parsed profiles.
//
// The adapter expects these tables to exist; creating them is left to the deployment:
//
//	CREATE TABLE match_results (
//	    id           UUID PRIMARY KEY,
//	    candidate_id TEXT NOT NULL,
//	    job_id       TEXT NOT NULL,
//	    final_score  DOUBLE PRECISION NOT NULL,
//	    tier         TEXT NOT NULL DEFAULT '',
//	    result       JSONB NOT NULL,
//	    explanation  JSONB,
//	    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE TABLE profiles (
//	    kind       TEXT NOT NULL,
//	    id         TEXT NOT NULL,
//	    content    JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    PRIMARY KEY (kind, id)
//	);
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
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}
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
