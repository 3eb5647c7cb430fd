// Package postgres implements the apply backend for Postgres using pgx v5.
package postgres

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN string // connection string for pgxpool
}

// Repository executes statements on a pgx pool.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository opens a pool, pings it, and returns a Close function.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, errors.New("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, errors.Wrap(err, "pgxpool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, errors.Wrap(err, "postgres: ping")
	}
	return &Repository{pool: pool}, pool.Close, nil
}

// Exec runs sql with the simple protocol, since the seed is one statement
// with no parameters. Server errors keep their detail and SQLSTATE.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx, sql); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return errors.Errorf("postgres: exec: %s: %s (%s)", pgErr.Message, pgErr.Detail, pgErr.SQLState())
		}
		return errors.Wrap(err, "postgres: exec")
	}
	return nil
}
