// Package db provides PostgreSQL access to the skill trend model tables.
//
// The model is stored in three tables:
//
//	skills(position INTEGER PRIMARY KEY, name TEXT UNIQUE NOT NULL)
//	skill_frequencies(skill TEXT PRIMARY KEY, frequency DOUBLE PRECISION NOT NULL)
//	skill_classifications(skill TEXT PRIMARY KEY, category TEXT NOT NULL)
//
// Vocabulary order is the ascending order of skills.position.
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
