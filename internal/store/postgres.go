// Package store manages the ForumHub PostgreSQL connection pool and schema.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Querier is the subset of *pgxpool.Pool used by the repositories.
// pgxmock pools satisfy it in unit tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pinger is implemented by pools that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DefaultConnectAttempts is how many times Open tries to reach the database.
const DefaultConnectAttempts = 5

// connectBackoff is the first delay between connection attempts.
const connectBackoff = 500 * time.Millisecond

// connectBackoffCap bounds the delay between connection attempts.
const connectBackoffCap = 5 * time.Second

// Open creates a pool for databaseURL and waits until the database answers a
// ping, retrying with exponential backoff up to attempts times.
func Open(ctx context.Context, databaseURL string, attempts int) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, oops.Code("DATABASE_CONFIG_INVALID").Wrap(err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, oops.Code("DATABASE_CONNECT_FAILED").With("operation", "create pool").Wrap(err)
	}

	if attempts < 1 {
		attempts = 1
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1),
		retry.WithCappedDuration(connectBackoffCap, retry.NewExponential(connectBackoff)))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("DATABASE_CONNECT_FAILED").
			With("operation", "ping").
			With("attempts", attempts).
			Wrap(err)
	}

	return pool, nil
}

// Readiness returns a readiness check that pings p.
func Readiness(p Pinger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return oops.Code("DATABASE_UNAVAILABLE").Wrap(err)
		}
		return nil
	}
}
