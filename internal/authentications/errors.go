// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package authentications

import (
	"errors"

	"github.com/samber/oops"

	"github.com/forumhub/forumhub/pkg/errutil"
)

// ErrTokenNotFound is returned when a refresh token is not in the allow-list.
var ErrTokenNotFound = errors.New("refresh token not found")

// ErrInvalidToken is returned when a token fails signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Error codes.
const (
	CodeTokenNotFound       = "AUTHENTICATION_REPOSITORY.TOKEN_NOT_FOUND"
	CodeInvalidRefreshToken = "TOKEN_MANAGER.INVALID_REFRESH_TOKEN"
	CodeNewAuthMissing      = "NEW_AUTH.NOT_CONTAIN_NEEDED_PROPERTY"
)

// TokenNotFound builds the invariant error for an unknown or revoked token.
func TokenNotFound() error {
	return oops.In(errutil.KindInvariant).
		Code(CodeTokenNotFound).
		Wrap(ErrTokenNotFound)
}

// InvalidRefreshToken builds the invariant error for a forged, malformed or expired token.
func InvalidRefreshToken(cause error) error {
	return oops.In(errutil.KindInvariant).
		Code(CodeInvalidRefreshToken).
		With("reason", cause.Error()).
		Wrap(ErrInvalidToken)
}
