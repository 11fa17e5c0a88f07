// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

// Package postgres implements users.UserRepository on PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/forumhub/forumhub/internal/store"
	"github.com/forumhub/forumhub/internal/users"
)

// UserRepository implements users.UserRepository using PostgreSQL.
type UserRepository struct {
	pool  store.Querier
	newID users.IDGenerator
}

// NewUserRepository creates a new UserRepository. A nil generator falls back
// to users.DefaultIDGenerator.
func NewUserRepository(pool store.Querier, newID users.IDGenerator) *UserRepository {
	if newID == nil {
		newID = users.DefaultIDGenerator
	}
	return &UserRepository{pool: pool, newID: newID}
}

// VerifyAvailableUsername fails if username is already registered.
func (r *UserRepository) VerifyAvailableUsername(ctx context.Context, username string) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`,
		username,
	).Scan(&exists)
	if err != nil {
		return oops.Code("USER_REPOSITORY.QUERY_FAILED").
			With("operation", "verify available username").
			With("username", username).
			Wrap(err)
	}
	if exists {
		return users.UsernameNotAvailable(username)
	}
	return nil
}

// AddUser inserts user under a freshly generated ID.
func (r *UserRepository) AddUser(ctx context.Context, user users.NewUser) (*users.RegisteredUser, error) {
	id := users.IDPrefix + r.newID()

	var stored users.RegisteredUser
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, password, fullname, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, username, fullname
	`,
		id,
		user.Username,
		user.PasswordHash,
		user.Fullname,
	).Scan(&stored.ID, &stored.Username, &stored.Fullname)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, users.UsernameNotAvailable(user.Username)
		}
		return nil, oops.Code("USER_REPOSITORY.ADD_USER_FAILED").
			With("operation", "insert user").
			With("username", user.Username).
			Wrap(err)
	}

	return users.NewRegisteredUser(stored.ID, stored.Username, stored.Fullname)
}

// GetPasswordByUsername returns the stored password hash for username.
func (r *UserRepository) GetPasswordByUsername(ctx context.Context, username string) (string, error) {
	return r.lookup(ctx, `SELECT password FROM users WHERE username = $1`, username, "get password by username")
}

// GetIDByUsername returns the ID of username.
func (r *UserRepository) GetIDByUsername(ctx context.Context, username string) (string, error) {
	return r.lookup(ctx, `SELECT id FROM users WHERE username = $1`, username, "get id by username")
}

func (r *UserRepository) lookup(ctx context.Context, query, username, operation string) (string, error) {
	var value string
	err := r.pool.QueryRow(ctx, query, username).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", users.UserNotFound(username)
	}
	if err != nil {
		return "", oops.Code("USER_REPOSITORY.QUERY_FAILED").
			With("operation", operation).
			With("username", username).
			Wrap(err)
	}
	return value, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Compile-time interface check.
var _ users.UserRepository = (*UserRepository)(nil)
