// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/forumhub/forumhub/internal/authentications"
	authmocks "github.com/forumhub/forumhub/internal/authentications/mocks"
	"github.com/forumhub/forumhub/internal/usecase"
	"github.com/forumhub/forumhub/pkg/errutil"
)

func TestNewLogoutUseCase_RequiresRepository(t *testing.T) {
	uc, err := usecase.NewLogoutUseCase(nil)
	assert.Nil(t, uc)
	assert.ErrorContains(t, err, "authentication repository is required")
}

func TestLogoutUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects payload without refresh token", func(t *testing.T) {
		uc, err := usecase.NewLogoutUseCase(authmocks.NewMockAuthenticationRepository(t))
		require.NoError(t, err)

		err = uc.Execute(ctx, usecase.Payload{})
		errutil.AssertErrorCode(t, err, usecase.CodeLogoutMissingToken)
	})

	t.Run("rejects non-string refresh token", func(t *testing.T) {
		uc, err := usecase.NewLogoutUseCase(authmocks.NewMockAuthenticationRepository(t))
		require.NoError(t, err)

		err = uc.Execute(ctx, usecase.Payload{"refreshToken": 123})
		errutil.AssertErrorCode(t, err, usecase.CodeLogoutWrongType)
	})

	t.Run("deletes a stored token", func(t *testing.T) {
		auths := authmocks.NewMockAuthenticationRepository(t)
		auths.On("CheckAvailabilityToken", mock.Anything, "refresh_token").Return(nil)
		auths.On("DeleteToken", mock.Anything, "refresh_token").Return(nil)

		uc, err := usecase.NewLogoutUseCase(auths, usecase.WithLogger(discardLogger()))
		require.NoError(t, err)

		require.NoError(t, uc.Execute(ctx, usecase.Payload{"refreshToken": "refresh_token"}))
	})

	t.Run("unknown token is not deleted", func(t *testing.T) {
		auths := authmocks.NewMockAuthenticationRepository(t)
		auths.On("CheckAvailabilityToken", mock.Anything, "refresh_token").Return(authentications.TokenNotFound())

		uc, err := usecase.NewLogoutUseCase(auths)
		require.NoError(t, err)

		err = uc.Execute(ctx, usecase.Payload{"refreshToken": "refresh_token"})
		errutil.AssertErrorCode(t, err, authentications.CodeTokenNotFound)
		auths.AssertNotCalled(t, "DeleteToken", mock.Anything, mock.Anything)
	})

	t.Run("propagates delete failure", func(t *testing.T) {
		auths := authmocks.NewMockAuthenticationRepository(t)
		boom := errors.New("connection reset")
		auths.On("CheckAvailabilityToken", mock.Anything, "refresh_token").Return(nil)
		auths.On("DeleteToken", mock.Anything, "refresh_token").Return(boom)

		uc, err := usecase.NewLogoutUseCase(auths)
		require.NoError(t, err)

		assert.ErrorIs(t, uc.Execute(ctx, usecase.Payload{"refreshToken": "refresh_token"}), boom)
	})
}
