// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package usecase

import (
	"context"

	"github.com/samber/oops"

	"github.com/forumhub/forumhub/internal/authentications"
)

// Refresh payload error codes.
const (
	CodeRefreshMissingToken = "REFRESH_AUTHENTICATION_USE_CASE.NOT_CONTAIN_REFRESH_TOKEN"
	CodeRefreshWrongType    = "REFRESH_AUTHENTICATION_USE_CASE.PAYLOAD_NOT_MEET_DATA_TYPE_SPECIFICATION"
)

// RefreshAuthUseCase issues a new access token for an allow-listed refresh token.
type RefreshAuthUseCase struct {
	base
	auths  authentications.AuthenticationRepository
	tokens authentications.TokenManager
}

// NewRefreshAuthUseCase creates a RefreshAuthUseCase.
func NewRefreshAuthUseCase(
	authRepo authentications.AuthenticationRepository,
	tokens authentications.TokenManager,
	opts ...Option,
) (*RefreshAuthUseCase, error) {
	if authRepo == nil {
		return nil, oops.Errorf("authentication repository is required")
	}
	if tokens == nil {
		return nil, oops.Errorf("token manager is required")
	}
	b, err := newBase(opts)
	if err != nil {
		return nil, err
	}
	return &RefreshAuthUseCase{base: b, auths: authRepo, tokens: tokens}, nil
}

// Execute returns a new access token. The refresh token is verified
// cryptographically and against the allow-list, and is not rotated.
func (uc *RefreshAuthUseCase) Execute(ctx context.Context, payload Payload) (_ string, err error) {
	ctx, done := uc.start(ctx, "refresh")
	defer func() { done(err) }()

	refreshToken, err := refreshTokenFrom(payload, CodeRefreshMissingToken, CodeRefreshWrongType)
	if err != nil {
		return "", err
	}

	if err = uc.tokens.VerifyRefreshToken(ctx, refreshToken); err != nil {
		return "", err
	}
	if err = uc.auths.CheckAvailabilityToken(ctx, refreshToken); err != nil {
		return "", err
	}

	decoded, err := uc.tokens.DecodePayload(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	accessToken, err := uc.tokens.CreateAccessToken(ctx, decoded)
	if err != nil {
		return "", err
	}
	return accessToken, nil
}

func refreshTokenFrom(payload Payload, missingCode, wrongTypeCode string) (string, error) {
	values, key, problem := readStrings(payload, "refreshToken")
	switch problem {
	case fieldMissing:
		return "", validationError(missingCode, key, "payload must contain a refresh token")
	case fieldWrongType:
		return "", validationError(wrongTypeCode, key, "refresh token must be a string")
	}
	return values[0], nil
}
