// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package main

import (
	"log/slog"

	"github.com/samber/oops"

	"github.com/forumhub/forumhub/internal/authentications"
	"github.com/forumhub/forumhub/internal/config"
	"github.com/forumhub/forumhub/internal/security"
	"github.com/forumhub/forumhub/internal/store"
	"github.com/forumhub/forumhub/internal/usecase"
	userspg "github.com/forumhub/forumhub/internal/users/postgres"
	"github.com/forumhub/forumhub/internal/web"
)

// newPasswordHasher builds the configured hasher.
func newPasswordHasher(cfg config.HasherConfig) (security.PasswordHasher, error) {
	switch cfg.Algorithm {
	case config.HasherArgon2id, "":
		return security.NewArgon2idHasher(), nil
	case config.HasherBcrypt:
		hasher, err := security.NewBcryptHasher(cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		return hasher, nil
	default:
		return nil, oops.Code("CONFIG_INVALID").
			With("key", "hasher.algorithm").
			Errorf("unknown password hashing algorithm %q", cfg.Algorithm)
	}
}

// newTokenManager builds the JWT token manager from cfg.
func newTokenManager(cfg config.TokenConfig) (*security.JWTTokenManager, error) {
	return security.NewJWTTokenManager(security.TokenConfig{
		AccessSecret:  []byte(cfg.AccessSecret),
		RefreshSecret: []byte(cfg.RefreshSecret),
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		Issuer:        cfg.Issuer,
	})
}

// newHandler wires the use cases into the HTTP handler.
func newHandler(
	db store.Querier,
	tokenStore authentications.AuthenticationRepository,
	tokens authentications.TokenManager,
	hasher security.PasswordHasher,
	logger *slog.Logger,
) (*web.Handler, error) {
	userRepo := userspg.NewUserRepository(db, nil)
	opts := []usecase.Option{usecase.WithLogger(logger)}

	addUser, err := usecase.NewAddUserUseCase(userRepo, hasher, opts...)
	if err != nil {
		return nil, err
	}
	login, err := usecase.NewLoginUserUseCase(userRepo, tokenStore, tokens, hasher, opts...)
	if err != nil {
		return nil, err
	}
	refresh, err := usecase.NewRefreshAuthUseCase(tokenStore, tokens, opts...)
	if err != nil {
		return nil, err
	}
	logout, err := usecase.NewLogoutUseCase(tokenStore, opts...)
	if err != nil {
		return nil, err
	}
	return web.NewHandler(addUser, login, refresh, logout, logger), nil
}
