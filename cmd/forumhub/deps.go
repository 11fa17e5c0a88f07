// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package main

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/forumhub/forumhub/internal/config"
	"github.com/forumhub/forumhub/internal/observability"
	"github.com/forumhub/forumhub/internal/store"
)

// ServeDeps contains injectable dependencies for the serve command.
// All fields with nil values will use their default implementations.
type ServeDeps struct {
	// DatabaseFactory opens the PostgreSQL pool.
	// Default: store.Open
	DatabaseFactory func(ctx context.Context, url string, attempts int) (Database, error)

	// RedisFactory creates the Redis client for the redis token store.
	// Default: redis.NewClient
	RedisFactory func(cfg config.RedisConfig) RedisClient

	// ObservabilityServerFactory creates an observability server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer

	// APIServerFactory creates the HTTP API server.
	// Default: web.NewServer
	APIServerFactory func(addr string, handler http.Handler) APIServer
}

// Database wraps the methods used from *pgxpool.Pool.
type Database interface {
	store.Querier
	store.Pinger
	Close()
}

// RedisClient wraps the methods used from *redis.Client.
type RedisClient interface {
	redis.Cmdable
	Close() error
}

// ObservabilityServer wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}

// APIServer wraps the methods used from web.Server.
type APIServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
}
