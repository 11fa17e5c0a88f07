// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forumhub/forumhub/internal/authentications"
	"github.com/forumhub/forumhub/internal/usecase"
	"github.com/forumhub/forumhub/internal/users"
	"github.com/forumhub/forumhub/internal/web"
)

type registrarFunc func(ctx context.Context, payload usecase.Payload) (*users.RegisteredUser, error)

func (f registrarFunc) Execute(ctx context.Context, payload usecase.Payload) (*users.RegisteredUser, error) {
	return f(ctx, payload)
}

type authenticatorFunc func(ctx context.Context, payload usecase.Payload) (*authentications.NewAuth, error)

func (f authenticatorFunc) Execute(ctx context.Context, payload usecase.Payload) (*authentications.NewAuth, error) {
	return f(ctx, payload)
}

type refresherFunc func(ctx context.Context, payload usecase.Payload) (string, error)

func (f refresherFunc) Execute(ctx context.Context, payload usecase.Payload) (string, error) {
	return f(ctx, payload)
}

type revokerFunc func(ctx context.Context, payload usecase.Payload) error

func (f revokerFunc) Execute(ctx context.Context, payload usecase.Payload) error {
	return f(ctx, payload)
}

func unexpected(t *testing.T) (registrarFunc, authenticatorFunc, refresherFunc, revokerFunc) {
	t.Helper()
	return func(context.Context, usecase.Payload) (*users.RegisteredUser, error) {
			t.Fatal("unexpected add user call")
			return nil, nil
		}, func(context.Context, usecase.Payload) (*authentications.NewAuth, error) {
			t.Fatal("unexpected login call")
			return nil, nil
		}, func(context.Context, usecase.Payload) (string, error) {
			t.Fatal("unexpected refresh call")
			return "", nil
		}, func(context.Context, usecase.Payload) error {
			t.Fatal("unexpected logout call")
			return nil
		}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, web.Envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env web.Envelope
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&env), rec.Body.String())
	return rec, env
}
