// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/forumhub/forumhub/internal/authentications"
	"github.com/forumhub/forumhub/internal/usecase"
	"github.com/forumhub/forumhub/internal/users"
)

// maxBodyBytes bounds a request body.
const maxBodyBytes = 1 << 20

// Registrar registers a user.
type Registrar interface {
	Execute(ctx context.Context, payload usecase.Payload) (*users.RegisteredUser, error)
}

// Authenticator exchanges credentials for a token pair.
type Authenticator interface {
	Execute(ctx context.Context, payload usecase.Payload) (*authentications.NewAuth, error)
}

// Refresher issues a new access token for a refresh token.
type Refresher interface {
	Execute(ctx context.Context, payload usecase.Payload) (string, error)
}

// Revoker revokes a refresh token.
type Revoker interface {
	Execute(ctx context.Context, payload usecase.Payload) error
}

// Handler serves the user and authentication endpoints.
type Handler struct {
	addUser Registrar
	login   Authenticator
	refresh Refresher
	logout  Revoker
	logger  *slog.Logger
}

// NewHandler creates a Handler. A nil logger falls back to slog.Default().
func NewHandler(addUser Registrar, login Authenticator, refresh Refresher, logout Revoker, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		addUser: addUser,
		login:   login,
		refresh: refresh,
		logout:  logout,
		logger:  logger,
	}
}

// PostUser handles POST /users.
func (h *Handler) PostUser(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}
	addedUser, err := h.addUser.Execute(r.Context(), payload)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	success(w, http.StatusCreated, map[string]any{"addedUser": addedUser})
}

// PostAuthentication handles POST /authentications.
func (h *Handler) PostAuthentication(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}
	auth, err := h.login.Execute(r.Context(), payload)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	success(w, http.StatusCreated, auth)
}

// PutAuthentication handles PUT /authentications.
func (h *Handler) PutAuthentication(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}
	accessToken, err := h.refresh.Execute(r.Context(), payload)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	success(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// DeleteAuthentication handles DELETE /authentications.
func (h *Handler) DeleteAuthentication(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.logout.Execute(r.Context(), payload); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Status: StatusSuccess})
}

// decode reads a JSON object body. An empty body decodes to an empty payload.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (usecase.Payload, bool) {
	payload := usecase.Payload{}
	if r.Body == nil {
		return payload, true
	}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload)
	if err == nil || errors.Is(err, io.EOF) {
		return payload, true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		fail(w, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "request body too large")
		return nil, false
	}
	fail(w, http.StatusBadRequest, CodeInvalidBody, "request body must be a JSON object")
	return nil, false
}

// Transport error codes.
const (
	CodeInvalidBody      = "HTTP.INVALID_BODY"
	CodeBodyTooLarge     = "HTTP.BODY_TOO_LARGE"
	CodeRouteNotFound    = "HTTP.ROUTE_NOT_FOUND"
	CodeMethodNotAllowed = "HTTP.METHOD_NOT_ALLOWED"
)
