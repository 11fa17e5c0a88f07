// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

// Package storetest starts a migrated PostgreSQL container for integration tests.
package storetest

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/forumhub/forumhub/internal/store"
)

// Database is a running, migrated PostgreSQL container.
type Database struct {
	URL  string
	Pool *pgxpool.Pool

	container *postgres.PostgresContainer
}

// Start runs a postgres:16-alpine container, applies all migrations and opens a pool.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("forumhub_test"),
		postgres.WithUsername("forumhub"),
		postgres.WithPassword("forumhub"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, oops.Code("TEST_CONTAINER_START_FAILED").Wrap(err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, oops.Code("TEST_CONTAINER_START_FAILED").With("operation", "connection string").Wrap(err)
	}

	migrator, err := store.NewMigrator(connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}
	_ = migrator.Close()

	pool, err := store.Open(ctx, connStr, store.DefaultConnectAttempts)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{URL: connStr, Pool: pool, container: container}, nil
}

// Truncate empties every application table.
func (d *Database) Truncate(ctx context.Context) error {
	_, err := d.Pool.Exec(ctx, `TRUNCATE users, authentications`)
	if err != nil {
		return oops.Code("TEST_TRUNCATE_FAILED").Wrap(err)
	}
	return nil
}

// Close releases the pool and terminates the container.
func (d *Database) Close(ctx context.Context) {
	d.Pool.Close()
	_ = d.container.Terminate(ctx)
}
