// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/forumhub/forumhub/internal/authentications"
	authpg "github.com/forumhub/forumhub/internal/authentications/postgres"
	authredis "github.com/forumhub/forumhub/internal/authentications/redis"
	"github.com/forumhub/forumhub/internal/config"
	"github.com/forumhub/forumhub/internal/logging"
	"github.com/forumhub/forumhub/internal/observability"
	"github.com/forumhub/forumhub/internal/store"
	"github.com/forumhub/forumhub/internal/web"
)

// shutdownTimeout bounds graceful shutdown of both servers.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the ForumHub API server",
		Long: `Start the HTTP API serving /users and /authentications, plus the
metrics and health endpoints when metrics.addr is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configOptions(cmd))
			if err != nil {
				return err
			}
			return runServeWithDeps(cmd.Context(), cfg, cmd, nil)
		},
	}

	config.RegisterFlags(cmd.Flags())

	return cmd
}

func defaultServeDeps(deps *ServeDeps) *ServeDeps {
	if deps == nil {
		deps = &ServeDeps{}
	}
	if deps.DatabaseFactory == nil {
		deps.DatabaseFactory = func(ctx context.Context, url string, attempts int) (Database, error) {
			pool, err := store.Open(ctx, url, attempts)
			if err != nil {
				return nil, err
			}
			return pool, nil
		}
	}
	if deps.RedisFactory == nil {
		deps.RedisFactory = func(cfg config.RedisConfig) RedisClient {
			return redis.NewClient(&redis.Options{
				Addr:     cfg.Addr,
				Password: cfg.Password,
				DB:       cfg.DB,
			})
		}
	}
	if deps.ObservabilityServerFactory == nil {
		deps.ObservabilityServerFactory = func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, readinessChecker)
		}
	}
	if deps.APIServerFactory == nil {
		deps.APIServerFactory = func(addr string, handler http.Handler) APIServer {
			return web.NewServer(addr, handler)
		}
	}
	return deps
}

// runServeWithDeps starts the API with injectable dependencies.
// If deps is nil, default implementations are used.
func runServeWithDeps(ctx context.Context, cfg *config.Config, cmd *cobra.Command, deps *ServeDeps) error {
	deps = defaultServeDeps(deps)

	logger, err := logging.SetDefault("forumhub", version, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return err
	}

	slog.Info("starting forumhub",
		"http_addr", cfg.HTTP.Addr,
		"token_store", cfg.Auth.TokenStore,
		"hasher", cfg.Hasher.Algorithm,
	)

	db, err := deps.DatabaseFactory(ctx, cfg.Database.URL, cfg.Database.ConnectAttempts)
	if err != nil {
		return err
	}
	defer db.Close()

	slog.Info("connected to database")

	checks := []observability.ReadinessChecker{store.Readiness(db)}

	var tokenStore authentications.AuthenticationRepository
	switch cfg.Auth.TokenStore {
	case config.TokenStoreRedis:
		client := deps.RedisFactory(cfg.Redis)
		defer func() {
			if closeErr := client.Close(); closeErr != nil {
				slog.Debug("error closing redis client", "error", closeErr)
			}
		}()
		tokenStore = authredis.NewTokenStore(client, cfg.Token.RefreshTTL)
		checks = append(checks, authredis.Readiness(client))
	default:
		tokenStore = authpg.NewTokenRepository(db)
	}

	hasher, err := newPasswordHasher(cfg.Hasher)
	if err != nil {
		return err
	}
	tokens, err := newTokenManager(cfg.Token)
	if err != nil {
		return err
	}
	handler, err := newHandler(db, tokenStore, tokens, hasher, logger)
	if err != nil {
		return oops.With("operation", "wire handlers").Wrap(err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var obsServer ObservabilityServer
	var metrics *observability.Metrics
	if cfg.Metrics.Addr != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.Metrics.Addr, allReady(checks))
		obsErrCh, err := obsServer.Start()
		if err != nil {
			return oops.Code("OBSERVABILITY_START_FAILED").With("addr", cfg.Metrics.Addr).Wrap(err)
		}
		go monitorServerErrors(ctx, cancel, obsErrCh, "observability")
		metrics = obsServer.Metrics()
		slog.Info("observability server started", "addr", obsServer.Addr())
	}

	apiServer := deps.APIServerFactory(cfg.HTTP.Addr, web.NewRouter(handler, metrics, logger))
	apiErrCh, err := apiServer.Start()
	if err != nil {
		if obsServer != nil {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer stopCancel()
			if stopErr := obsServer.Stop(stopCtx); stopErr != nil {
				slog.Warn("failed to stop observability server during cleanup", "error", stopErr)
			}
		}
		return err
	}
	go monitorServerErrors(ctx, cancel, apiErrCh, "api")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("ForumHub API started")
	slog.Info("forumhub ready", "http_addr", apiServer.Addr())

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		slog.Warn("error stopping api server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return nil
}

// allReady reports ready only when every check passes.
func allReady(checks []observability.ReadinessChecker) observability.ReadinessChecker {
	return func(ctx context.Context) error {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// monitorServerErrors cancels ctx when a server reports a failure.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
