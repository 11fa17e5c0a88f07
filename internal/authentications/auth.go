// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package authentications

import (
	"context"
	"strings"

	"github.com/samber/oops"

	"github.com/forumhub/forumhub/pkg/errutil"
)

// NewAuth is the token pair returned by a successful login.
type NewAuth struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// NewNewAuth creates a NewAuth, requiring both tokens.
func NewNewAuth(accessToken, refreshToken string) (*NewAuth, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, oops.In(errutil.KindValidation).
			Code(CodeNewAuthMissing).
			With("property", "accessToken").
			Errorf("access token cannot be empty")
	}
	if strings.TrimSpace(refreshToken) == "" {
		return nil, oops.In(errutil.KindValidation).
			Code(CodeNewAuthMissing).
			With("property", "refreshToken").
			Errorf("refresh token cannot be empty")
	}
	return &NewAuth{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// TokenPayload is the identity embedded in access and refresh tokens.
type TokenPayload struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// AuthenticationRepository is the refresh-token allow-list.
type AuthenticationRepository interface {
	// AddToken records a refresh token as valid.
	AddToken(ctx context.Context, token string) error

	// CheckAvailabilityToken returns an invariant error coded
	// AUTHENTICATION_REPOSITORY.TOKEN_NOT_FOUND when token is not recorded.
	CheckAvailabilityToken(ctx context.Context, token string) error

	// DeleteToken removes a refresh token. Deleting an absent token is not an error.
	DeleteToken(ctx context.Context, token string) error
}

// TokenManager issues and inspects signed tokens.
type TokenManager interface {
	// CreateAccessToken signs a short-lived access token for payload.
	CreateAccessToken(ctx context.Context, payload TokenPayload) (string, error)

	// CreateRefreshToken signs a long-lived refresh token for payload.
	// Every call returns a distinct token.
	CreateRefreshToken(ctx context.Context, payload TokenPayload) (string, error)

	// VerifyRefreshToken checks the signature and expiry of a refresh token.
	// Fails with an invariant error coded TOKEN_MANAGER.INVALID_REFRESH_TOKEN.
	VerifyRefreshToken(ctx context.Context, token string) error

	// DecodePayload returns the payload embedded in token without verifying it.
	DecodePayload(ctx context.Context, token string) (TokenPayload, error)
}
