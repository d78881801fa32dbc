package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultMaxConns sizes the pool when the configured value is not positive.
// Guild settings are the only tables, so a handful of connections is plenty.
const DefaultMaxConns = 4

// DB wraps the guild settings connection pool
type DB struct {
	*pgxpool.Pool
}

// poolConfig parses databaseURL into a pool holding at most maxConns
// connections, each pinned to UTC and tagged with the bot's name
func poolConfig(databaseURL string, maxConns int) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	cfg.MaxConns = int32(maxConns)
	cfg.ConnConfig.RuntimeParams["timezone"] = "UTC"
	if _, ok := cfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		cfg.ConnConfig.RuntimeParams["application_name"] = "sbl-bot"
	}
	return cfg, nil
}

// NewConnection opens the pool and checks the server answers
func NewConnection(ctx context.Context, databaseURL string, maxConns int) (*DB, error) {
	cfg, err := poolConfig(databaseURL, maxConns)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close releases every pooled connection
func (db *DB) Close() {
	db.Pool.Close()
}
