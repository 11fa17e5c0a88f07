// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package usecase

import (
	"context"

	"github.com/samber/oops"

	"github.com/forumhub/forumhub/internal/authentications"
)

// Logout payload error codes.
const (
	CodeLogoutMissingToken = "DELETE_AUTHENTICATION_USE_CASE.NOT_CONTAIN_REFRESH_TOKEN"
	CodeLogoutWrongType    = "DELETE_AUTHENTICATION_USE_CASE.PAYLOAD_NOT_MEET_DATA_TYPE_SPECIFICATION"
)

// LogoutUseCase revokes a refresh token.
type LogoutUseCase struct {
	base
	auths authentications.AuthenticationRepository
}

// NewLogoutUseCase creates a LogoutUseCase.
func NewLogoutUseCase(authRepo authentications.AuthenticationRepository, opts ...Option) (*LogoutUseCase, error) {
	if authRepo == nil {
		return nil, oops.Errorf("authentication repository is required")
	}
	b, err := newBase(opts)
	if err != nil {
		return nil, err
	}
	return &LogoutUseCase{base: b, auths: authRepo}, nil
}

// Execute removes the refresh token in payload from the allow-list.
// The token's signature is not checked; any stored value can be revoked.
func (uc *LogoutUseCase) Execute(ctx context.Context, payload Payload) (err error) {
	ctx, done := uc.start(ctx, "logout")
	defer func() { done(err) }()

	refreshToken, err := refreshTokenFrom(payload, CodeLogoutMissingToken, CodeLogoutWrongType)
	if err != nil {
		return err
	}

	if err = uc.auths.CheckAvailabilityToken(ctx, refreshToken); err != nil {
		return err
	}
	return uc.auths.DeleteToken(ctx, refreshToken)
}
