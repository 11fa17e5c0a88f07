// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forumhub/forumhub/internal/authentications"
	"github.com/forumhub/forumhub/internal/authentications/postgres"
	"github.com/forumhub/forumhub/pkg/errutil"
)

func TestTokenRepository_Integration(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testDB.Truncate(ctx))
	repo := postgres.NewTokenRepository(testDB.Pool)

	errutil.AssertErrorCode(t, repo.CheckAvailabilityToken(ctx, refreshToken), authentications.CodeTokenNotFound)

	require.NoError(t, repo.AddToken(ctx, refreshToken))
	require.NoError(t, repo.AddToken(ctx, refreshToken))
	require.NoError(t, repo.CheckAvailabilityToken(ctx, refreshToken))

	require.NoError(t, repo.DeleteToken(ctx, refreshToken))
	errutil.AssertErrorCode(t, repo.CheckAvailabilityToken(ctx, refreshToken), authentications.CodeTokenNotFound)
	require.NoError(t, repo.DeleteToken(ctx, refreshToken))
}
