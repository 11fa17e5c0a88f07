// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

// Package web exposes the ForumHub use cases over HTTP.
package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/forumhub/forumhub/internal/observability"
)

// NewRouter wires h into a router. metrics may be nil.
func NewRouter(h *Handler, metrics *observability.Metrics, logger *slog.Logger) *mux.Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := mux.NewRouter()
	r.Use(recoverMiddleware(logger))
	r.Use(loggingMiddleware(logger))
	if metrics != nil {
		r.Use(metricsMiddleware(metrics))
	}

	r.HandleFunc("/users", h.PostUser).Methods(http.MethodPost)
	r.HandleFunc("/authentications", h.PostAuthentication).Methods(http.MethodPost)
	r.HandleFunc("/authentications", h.PutAuthentication).Methods(http.MethodPut)
	r.HandleFunc("/authentications", h.DeleteAuthentication).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fail(w, http.StatusNotFound, CodeRouteNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fail(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})

	return r
}
