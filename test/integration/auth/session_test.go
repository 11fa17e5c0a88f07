// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

//go:build integration

package auth_test

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/forumhub/forumhub/internal/authentications"
	"github.com/forumhub/forumhub/internal/security"
	"github.com/forumhub/forumhub/internal/users"
)

var _ = Describe("Login, refresh and logout", func() {
	credentials := map[string]any{"username": "dicoding", "password": "secret"}

	BeforeEach(func() {
		status, _ := send(http.MethodPost, "/users", map[string]any{
			"username": "dicoding",
			"password": "secret",
			"fullname": "Dicoding Indonesia",
		})
		Expect(status).To(Equal(http.StatusCreated))
	})

	login := func() (string, string) {
		status, envelope := send(http.MethodPost, "/authentications", credentials)
		Expect(status).To(Equal(http.StatusCreated))
		access, _ := dataField(envelope, "accessToken").(string)
		refresh, _ := dataField(envelope, "refreshToken").(string)
		Expect(access).NotTo(BeEmpty())
		Expect(refresh).NotTo(BeEmpty())
		return access, refresh
	}

	It("records the refresh token at login", func() {
		_, refresh := login()

		var n int
		Expect(env.db.Pool.QueryRow(env.ctx,
			`SELECT count(*) FROM authentications WHERE token = $1`, refresh).Scan(&n)).To(Succeed())
		Expect(n).To(Equal(1))
	})

	It("issues a distinct refresh token per login", func() {
		_, first := login()
		_, second := login()
		Expect(first).NotTo(Equal(second))
	})

	It("refreshes an access token without rotating the refresh token", func() {
		_, refresh := login()

		status, envelope := send(http.MethodPut, "/authentications", map[string]any{"refreshToken": refresh})
		Expect(status).To(Equal(http.StatusOK))
		Expect(dataField(envelope, "accessToken")).NotTo(BeEmpty())

		status, _ = send(http.MethodPut, "/authentications", map[string]any{"refreshToken": refresh})
		Expect(status).To(Equal(http.StatusOK))
	})

	It("refuses to refresh after logout", func() {
		_, refresh := login()

		status, _ := send(http.MethodDelete, "/authentications", map[string]any{"refreshToken": refresh})
		Expect(status).To(Equal(http.StatusOK))

		status, envelope := send(http.MethodPut, "/authentications", map[string]any{"refreshToken": refresh})
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(envelope.Code).To(Equal(authentications.CodeTokenNotFound))

		status, envelope = send(http.MethodDelete, "/authentications", map[string]any{"refreshToken": refresh})
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(envelope.Code).To(Equal(authentications.CodeTokenNotFound))
	})

	It("rejects an access token presented as a refresh token", func() {
		access, _ := login()

		status, envelope := send(http.MethodPut, "/authentications", map[string]any{"refreshToken": access})
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(envelope.Code).To(Equal(authentications.CodeInvalidRefreshToken))
	})

	It("rejects a wrong password as unauthorized", func() {
		status, envelope := send(http.MethodPost, "/authentications",
			map[string]any{"username": "dicoding", "password": "wrong"})
		Expect(status).To(Equal(http.StatusUnauthorized))
		Expect(envelope.Code).To(Equal(security.CodeWrongCredentials))
	})

	It("reports an unknown username", func() {
		status, envelope := send(http.MethodPost, "/authentications",
			map[string]any{"username": "nobody", "password": "secret"})
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(envelope.Code).To(Equal(users.CodeUserNotFound))
	})
})
