// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

// Package postgres implements the refresh-token allow-list on PostgreSQL.
package postgres

import (
	"context"

	"github.com/samber/oops"

	"github.com/forumhub/forumhub/internal/authentications"
	"github.com/forumhub/forumhub/internal/store"
)

// TokenRepository implements authentications.AuthenticationRepository using PostgreSQL.
type TokenRepository struct {
	pool store.Querier
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(pool store.Querier) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// AddToken records token. Recording a token twice is a no-op.
func (r *TokenRepository) AddToken(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO authentications (token, created_at)
		VALUES ($1, now())
		ON CONFLICT (token) DO NOTHING
	`, token)
	if err != nil {
		return oops.Code("AUTHENTICATION_REPOSITORY.ADD_TOKEN_FAILED").
			With("operation", "insert token").
			Wrap(err)
	}
	return nil
}

// CheckAvailabilityToken fails with TokenNotFound when token is not recorded.
func (r *TokenRepository) CheckAvailabilityToken(ctx context.Context, token string) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM authentications WHERE token = $1)`,
		token,
	).Scan(&exists)
	if err != nil {
		return oops.Code("AUTHENTICATION_REPOSITORY.QUERY_FAILED").
			With("operation", "check token").
			Wrap(err)
	}
	if !exists {
		return authentications.TokenNotFound()
	}
	return nil
}

// DeleteToken removes token if present.
func (r *TokenRepository) DeleteToken(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM authentications WHERE token = $1`, token)
	if err != nil {
		return oops.Code("AUTHENTICATION_REPOSITORY.DELETE_TOKEN_FAILED").
			With("operation", "delete token").
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ authentications.AuthenticationRepository = (*TokenRepository)(nil)
