// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

// Package security provides the credential and token primitives behind
// ForumHub authentication: password hashers and the JWT token manager.
package security
