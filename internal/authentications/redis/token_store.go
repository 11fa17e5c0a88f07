// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

// Package redis implements the refresh-token allow-list on Redis.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/forumhub/forumhub/internal/authentications"
)

// KeyPrefix namespaces allow-list keys.
const KeyPrefix = "forumhub:auth:refresh:"

// TokenStore implements authentications.AuthenticationRepository using Redis.
// Tokens are stored under the hex SHA-256 of their value.
type TokenStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore. Keys expire after ttl; zero keeps them
// until deleted.
func NewTokenStore(client redis.Cmdable, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

// Key returns the Redis key for token.
func Key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// AddToken records token.
func (s *TokenStore) AddToken(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, Key(token), 1, s.ttl).Err(); err != nil {
		return oops.Code("AUTHENTICATION_REPOSITORY.ADD_TOKEN_FAILED").
			With("operation", "set token").
			Wrap(err)
	}
	return nil
}

// CheckAvailabilityToken fails with TokenNotFound when token is not recorded.
func (s *TokenStore) CheckAvailabilityToken(ctx context.Context, token string) error {
	n, err := s.client.Exists(ctx, Key(token)).Result()
	if err != nil {
		return oops.Code("AUTHENTICATION_REPOSITORY.QUERY_FAILED").
			With("operation", "check token").
			Wrap(err)
	}
	if n == 0 {
		return authentications.TokenNotFound()
	}
	return nil
}

// DeleteToken removes token if present.
func (s *TokenStore) DeleteToken(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, Key(token)).Err(); err != nil {
		return oops.Code("AUTHENTICATION_REPOSITORY.DELETE_TOKEN_FAILED").
			With("operation", "delete token").
			Wrap(err)
	}
	return nil
}

// Readiness returns a checker that pings client.
func Readiness(client redis.Cmdable) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return oops.Code("REDIS_UNAVAILABLE").Wrap(err)
		}
		return nil
	}
}

// Compile-time interface check.
var _ authentications.AuthenticationRepository = (*TokenStore)(nil)
