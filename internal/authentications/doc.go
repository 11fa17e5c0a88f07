// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

// Package authentications defines the token side of ForumHub authentication:
// the NewAuth result of a login, the TokenPayload embedded in tokens, the
// refresh-token allow-list contract, and the TokenManager contract.
//
// A refresh token is valid only while it is present in the allow-list.
// Logout removes it; signature and expiry checks are the TokenManager's job.
package authentications
