// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

// Package usecase orchestrates ForumHub authentication flows.
//
// Each use case takes a raw decoded Payload, validates it, and drives its
// collaborators strictly in sequence:
//   - AddUserUseCase - registration
//   - LoginUserUseCase - credential check and token issue
//   - RefreshAuthUseCase - access token reissue from an allow-listed refresh token
//   - LogoutUseCase - refresh token revocation
//
// Use cases hold no mutable state and never retry. Every collaborator error
// is returned to the caller unchanged so its code and kind survive.
package usecase
