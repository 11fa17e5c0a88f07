// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package usecase

import (
	"context"

	"github.com/samber/oops"

	"github.com/forumhub/forumhub/internal/security"
	"github.com/forumhub/forumhub/internal/users"
)

// AddUserUseCase registers new users.
type AddUserUseCase struct {
	base
	users  users.UserRepository
	hasher security.PasswordHasher
}

// NewAddUserUseCase creates an AddUserUseCase.
func NewAddUserUseCase(repo users.UserRepository, hasher security.PasswordHasher, opts ...Option) (*AddUserUseCase, error) {
	if repo == nil {
		return nil, oops.Errorf("user repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	b, err := newBase(opts)
	if err != nil {
		return nil, err
	}
	return &AddUserUseCase{base: b, users: repo, hasher: hasher}, nil
}

// Execute validates payload, checks the username is free, hashes the
// password and stores the user.
//
// The availability check is advisory. A concurrent registration that wins
// the race is rejected by the repository with the same error.
func (uc *AddUserUseCase) Execute(ctx context.Context, payload Payload) (_ *users.RegisteredUser, err error) {
	ctx, done := uc.start(ctx, "register")
	defer func() { done(err) }()

	reg, err := users.NewUserRegister(payload)
	if err != nil {
		return nil, err
	}

	if err = uc.users.VerifyAvailableUsername(ctx, reg.Username()); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(ctx, reg.Password())
	if err != nil {
		return nil, err
	}

	registered, err := uc.users.AddUser(ctx, reg.WithPasswordHash(hash))
	if err != nil {
		return nil, err
	}
	return registered, nil
}
