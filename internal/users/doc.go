// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

// Package users provides the user account entities for ForumHub.
//
// # Domain Types
//
// Domain types should be created using their constructors:
//   - NewUserRegister - validates a raw registration payload
//   - NewRegisteredUser - builds the public view of a stored user
//
// A validated UserRegister is never mutated. UserRegister.WithPasswordHash
// derives the persist-ready NewUser carrying the hashed credential.
//
// Direct struct initialization bypasses validation and may create invalid state.
// Repository implementations receive pre-validated types from these constructors.
package users
