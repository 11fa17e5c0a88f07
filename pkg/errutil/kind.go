// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package errutil

import (
	"github.com/samber/oops"
)

// Error kinds. A kind is carried as the oops domain of an error.
const (
	KindValidation     = "validation"
	KindInvariant      = "invariant"
	KindAuthentication = "authentication"
)

// CodeOf returns the oops code carried by err, or "" when err has none.
func CodeOf(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	if code, ok := any(oopsErr.Code()).(string); ok {
		return code
	}
	return ""
}

// KindOf returns the kind carried by err, or "" for infrastructure errors.
func KindOf(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	return oopsErr.Domain()
}

// IsClientError reports whether err describes a caller mistake rather than
// an infrastructure failure.
func IsClientError(err error) bool {
	switch KindOf(err) {
	case KindValidation, KindInvariant, KindAuthentication:
		return true
	default:
		return false
	}
}
