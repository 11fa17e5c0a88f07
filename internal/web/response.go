// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/samber/oops"

	"github.com/forumhub/forumhub/pkg/errutil"
)

// Envelope statuses.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// internalErrorMessage is returned for every infrastructure failure.
const internalErrorMessage = "internal server error"

// Envelope is the body of every API response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // client may disconnect
	json.NewEncoder(w).Encode(body)
}

func success(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Status: StatusSuccess, Data: data})
}

func fail(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Envelope{Status: StatusFail, Code: code, Message: message})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch errutil.KindOf(err) {
	case errutil.KindValidation, errutil.KindInvariant:
		return http.StatusBadRequest
	case errutil.KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Client errors carry their code and message;
// anything else is logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		errutil.LogError(logger, "request failed", oops.
			With("method", r.Method).
			With("path", r.URL.Path).
			Wrap(err))
		writeJSON(w, status, Envelope{Status: StatusError, Message: internalErrorMessage})
		return
	}
	fail(w, status, errutil.CodeOf(err), err.Error())
}
