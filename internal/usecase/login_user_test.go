// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/forumhub/forumhub/internal/authentications"
	authmocks "github.com/forumhub/forumhub/internal/authentications/mocks"
	"github.com/forumhub/forumhub/internal/security"
	securitymocks "github.com/forumhub/forumhub/internal/security/mocks"
	"github.com/forumhub/forumhub/internal/usecase"
	"github.com/forumhub/forumhub/internal/users"
	usermocks "github.com/forumhub/forumhub/internal/users/mocks"
	"github.com/forumhub/forumhub/pkg/errutil"
)

type loginDeps struct {
	users  *usermocks.MockUserRepository
	auths  *authmocks.MockAuthenticationRepository
	tokens *authmocks.MockTokenManager
	hasher *securitymocks.MockPasswordHasher
}

func newLoginUseCase(t *testing.T, opts ...usecase.Option) (*usecase.LoginUserUseCase, loginDeps) {
	t.Helper()
	deps := loginDeps{
		users:  usermocks.NewMockUserRepository(t),
		auths:  authmocks.NewMockAuthenticationRepository(t),
		tokens: authmocks.NewMockTokenManager(t),
		hasher: securitymocks.NewMockPasswordHasher(t),
	}
	uc, err := usecase.NewLoginUserUseCase(deps.users, deps.auths, deps.tokens, deps.hasher, opts...)
	require.NoError(t, err)
	return uc, deps
}

func TestNewLoginUserUseCase_RequiresDependencies(t *testing.T) {
	userRepo := usermocks.NewMockUserRepository(t)
	authRepo := authmocks.NewMockAuthenticationRepository(t)
	tokens := authmocks.NewMockTokenManager(t)
	hasher := securitymocks.NewMockPasswordHasher(t)

	_, err := usecase.NewLoginUserUseCase(nil, authRepo, tokens, hasher)
	assert.ErrorContains(t, err, "user repository is required")
	_, err = usecase.NewLoginUserUseCase(userRepo, nil, tokens, hasher)
	assert.ErrorContains(t, err, "authentication repository is required")
	_, err = usecase.NewLoginUserUseCase(userRepo, authRepo, nil, hasher)
	assert.ErrorContains(t, err, "token manager is required")
	_, err = usecase.NewLoginUserUseCase(userRepo, authRepo, tokens, nil)
	assert.ErrorContains(t, err, "password hasher is required")
}

func TestLoginUserUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	payload := usecase.Payload{"username": "uname", "password": "secret"}
	tokenPayload := authentications.TokenPayload{Username: "uname", ID: "user-123"}

	t.Run("orchestrates login", func(t *testing.T) {
		uc, d := newLoginUseCase(t, usecase.WithLogger(discardLogger()))

		d.users.On("GetPasswordByUsername", mock.Anything, "uname").Return("encrypted_password", nil)
		d.hasher.On("Compare", mock.Anything, "secret", "encrypted_password").Return(nil)
		d.users.On("GetIDByUsername", mock.Anything, "uname").Return("user-123", nil)
		d.tokens.On("CreateAccessToken", mock.Anything, tokenPayload).Return("access_token", nil)
		d.tokens.On("CreateRefreshToken", mock.Anything, tokenPayload).Return("refresh_token", nil)
		d.auths.On("AddToken", mock.Anything, "refresh_token").Return(nil)

		auth, err := uc.Execute(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, &authentications.NewAuth{
			AccessToken:  "access_token",
			RefreshToken: "refresh_token",
		}, auth)
	})

	t.Run("rejects missing password", func(t *testing.T) {
		uc, _ := newLoginUseCase(t)

		_, err := uc.Execute(ctx, usecase.Payload{"username": "uname"})
		errutil.AssertErrorCode(t, err, usecase.CodeLoginMissingProperty)
		errutil.AssertErrorKind(t, err, errutil.KindValidation)
		errutil.AssertErrorContext(t, err, "property", "password")
	})

	t.Run("rejects non-string username", func(t *testing.T) {
		uc, _ := newLoginUseCase(t)

		_, err := uc.Execute(ctx, usecase.Payload{"username": 123, "password": "secret"})
		errutil.AssertErrorCode(t, err, usecase.CodeLoginWrongType)
		errutil.AssertErrorKind(t, err, errutil.KindValidation)
	})

	t.Run("unknown user is verified against the dummy hash before failing", func(t *testing.T) {
		uc, d := newLoginUseCase(t)

		d.users.On("GetPasswordByUsername", mock.Anything, "uname").Return("", users.UserNotFound("uname"))
		d.hasher.On("Compare", mock.Anything, "secret", security.DummyArgon2idHash).
			Return(wrongCredentials(t)).Once()

		_, err := uc.Execute(ctx, payload)
		errutil.AssertErrorCode(t, err, users.CodeUserNotFound)
		errutil.AssertErrorKind(t, err, errutil.KindInvariant)
		d.hasher.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
	})

	t.Run("unknown user with empty password still runs a comparison", func(t *testing.T) {
		uc, d := newLoginUseCase(t)

		d.users.On("GetPasswordByUsername", mock.Anything, "uname").Return("", users.UserNotFound("uname"))
		d.hasher.On("Compare", mock.Anything, "", security.DummyArgon2idHash).
			Return(wrongCredentials(t)).Once()

		_, err := uc.Execute(ctx, usecase.Payload{"username": "uname", "password": ""})
		errutil.AssertErrorCode(t, err, users.CodeUserNotFound)
		d.hasher.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
	})

	t.Run("wrong password fails with authentication error", func(t *testing.T) {
		uc, d := newLoginUseCase(t)

		d.users.On("GetPasswordByUsername", mock.Anything, "uname").Return("encrypted_password", nil)
		d.hasher.On("Compare", mock.Anything, "secret", "encrypted_password").
			Return(wrongCredentials(t))

		_, err := uc.Execute(ctx, payload)
		errutil.AssertErrorCode(t, err, security.CodeWrongCredentials)
		errutil.AssertErrorKind(t, err, errutil.KindAuthentication)
		d.users.AssertNotCalled(t, "GetIDByUsername", mock.Anything, mock.Anything)
	})

	t.Run("fails when refresh token cannot be recorded", func(t *testing.T) {
		uc, d := newLoginUseCase(t)
		boom := errors.New("insert failed")

		d.users.On("GetPasswordByUsername", mock.Anything, "uname").Return("encrypted_password", nil)
		d.hasher.On("Compare", mock.Anything, "secret", "encrypted_password").Return(nil)
		d.users.On("GetIDByUsername", mock.Anything, "uname").Return("user-123", nil)
		d.tokens.On("CreateAccessToken", mock.Anything, tokenPayload).Return("access_token", nil)
		d.tokens.On("CreateRefreshToken", mock.Anything, tokenPayload).Return("refresh_token", nil)
		d.auths.On("AddToken", mock.Anything, "refresh_token").Return(boom)

		auth, err := uc.Execute(ctx, payload)
		assert.Nil(t, auth)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("propagates id lookup failure", func(t *testing.T) {
		uc, d := newLoginUseCase(t)

		d.users.On("GetPasswordByUsername", mock.Anything, "uname").Return("encrypted_password", nil)
		d.hasher.On("Compare", mock.Anything, "secret", "encrypted_password").Return(nil)
		d.users.On("GetIDByUsername", mock.Anything, "uname").Return("", users.UserNotFound("uname"))

		_, err := uc.Execute(ctx, payload)
		errutil.AssertErrorCode(t, err, users.CodeUserNotFound)
		d.tokens.AssertNotCalled(t, "CreateAccessToken", mock.Anything, mock.Anything)
	})
}

func TestLoginUserUseCase_LogsRejections(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	uc, _ := newLoginUseCase(t, usecase.WithLogger(logger))

	_, err := uc.Execute(context.Background(), usecase.Payload{})
	require.Error(t, err)

	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), usecase.CodeLoginMissingProperty)
	assert.NotContains(t, buf.String(), "secret")
}

// wrongCredentials returns a real mismatch error from the bcrypt hasher.
func wrongCredentials(t *testing.T) error {
	t.Helper()
	ctx := context.Background()
	hasher, err := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	hash, err := hasher.Hash(ctx, "other")
	require.NoError(t, err)
	err = hasher.Compare(ctx, "secret", hash)
	require.Equal(t, security.CodeWrongCredentials, errutil.CodeOf(err))
	return err
}
