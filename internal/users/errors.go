// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package users

import (
	"errors"

	"github.com/samber/oops"

	"github.com/forumhub/forumhub/pkg/errutil"
)

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when a username is already registered.
var ErrUsernameTaken = errors.New("username not available")

// Repository error codes.
const (
	CodeUsernameNotAvailable = "USER_REPOSITORY.USERNAME_NOT_AVAILABLE"
	CodeUserNotFound         = "USER_REPOSITORY.USER_NOT_FOUND"
)

// UsernameNotAvailable builds the invariant error for a taken username.
// Adapters return it both from the advisory check and from a rejected insert.
func UsernameNotAvailable(username string) error {
	return oops.In(errutil.KindInvariant).
		Code(CodeUsernameNotAvailable).
		With("username", username).
		Wrap(ErrUsernameTaken)
}

// UserNotFound builds the invariant error for an unknown username.
func UserNotFound(username string) error {
	return oops.In(errutil.KindInvariant).
		Code(CodeUserNotFound).
		With("username", username).
		Wrap(ErrNotFound)
}
