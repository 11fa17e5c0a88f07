// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package usecase

import (
	"context"
	"errors"

	"github.com/samber/oops"

	"github.com/forumhub/forumhub/internal/authentications"
	"github.com/forumhub/forumhub/internal/security"
	"github.com/forumhub/forumhub/internal/users"
)

// Login payload error codes.
const (
	CodeLoginMissingProperty = "USER_LOGIN.NOT_CONTAIN_NEEDED_PROPERTY"
	CodeLoginWrongType       = "USER_LOGIN.NOT_MEET_DATA_TYPE_SPECIFICATION"
)

// LoginUserUseCase exchanges a username and password for a token pair.
type LoginUserUseCase struct {
	base
	users  users.UserRepository
	auths  authentications.AuthenticationRepository
	tokens authentications.TokenManager
	hasher security.PasswordHasher
	// dummyHash is compared against when the username is unknown.
	dummyHash string
}

// NewLoginUserUseCase creates a LoginUserUseCase.
func NewLoginUserUseCase(
	userRepo users.UserRepository,
	authRepo authentications.AuthenticationRepository,
	tokens authentications.TokenManager,
	hasher security.PasswordHasher,
	opts ...Option,
) (*LoginUserUseCase, error) {
	if userRepo == nil {
		return nil, oops.Errorf("user repository is required")
	}
	if authRepo == nil {
		return nil, oops.Errorf("authentication repository is required")
	}
	if tokens == nil {
		return nil, oops.Errorf("token manager is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	b, err := newBase(opts)
	if err != nil {
		return nil, err
	}
	return &LoginUserUseCase{
		base:      b,
		users:     userRepo,
		auths:     authRepo,
		tokens:    tokens,
		hasher:    hasher,
		dummyHash: security.DummyHashFor(hasher),
	}, nil
}

// Execute verifies the credentials in payload and returns a new token pair.
// The refresh token is recorded in the allow-list before anything is
// returned; if that fails the login fails.
func (uc *LoginUserUseCase) Execute(ctx context.Context, payload Payload) (_ *authentications.NewAuth, err error) {
	ctx, done := uc.start(ctx, "login")
	defer func() { done(err) }()

	values, key, problem := readStrings(payload, "username", "password")
	switch problem {
	case fieldMissing:
		return nil, validationError(CodeLoginMissingProperty, key, "login payload is missing "+key)
	case fieldWrongType:
		return nil, validationError(CodeLoginWrongType, key, key+" must be a string")
	}
	username, password := values[0], values[1]

	hash, err := uc.users.GetPasswordByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			// Verify against the dummy hash so both failure paths cost the same.
			_ = uc.hasher.Compare(ctx, password, uc.dummyHash)
		}
		return nil, err
	}

	if err = uc.hasher.Compare(ctx, password, hash); err != nil {
		return nil, err
	}

	id, err := uc.users.GetIDByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	tokenPayload := authentications.TokenPayload{Username: username, ID: id}

	accessToken, err := uc.tokens.CreateAccessToken(ctx, tokenPayload)
	if err != nil {
		return nil, err
	}
	refreshToken, err := uc.tokens.CreateRefreshToken(ctx, tokenPayload)
	if err != nil {
		return nil, err
	}

	if err = uc.auths.AddToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return authentications.NewNewAuth(accessToken, refreshToken)
}
