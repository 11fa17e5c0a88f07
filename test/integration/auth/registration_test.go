// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

//go:build integration

package auth_test

import (
	"net/http"
	"sync"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/forumhub/forumhub/internal/users"
	"github.com/forumhub/forumhub/internal/web"
)

var _ = Describe("Registration", func() {
	newUser := map[string]any{
		"username": "dicoding",
		"password": "secret",
		"fullname": "Dicoding Indonesia",
	}

	It("returns the registered user without the password", func() {
		status, envelope := send(http.MethodPost, "/users", newUser)

		Expect(status).To(Equal(http.StatusCreated))
		added, ok := dataField(envelope, "addedUser").(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(added["id"]).To(MatchRegexp(`^user-[0-9a-z]{26}$`))
		Expect(added["username"]).To(Equal("dicoding"))
		Expect(added["fullname"]).To(Equal("Dicoding Indonesia"))
		Expect(added).NotTo(HaveKey("password"))
	})

	It("stores a hash rather than the plaintext password", func() {
		status, _ := send(http.MethodPost, "/users", newUser)
		Expect(status).To(Equal(http.StatusCreated))

		var stored string
		Expect(env.db.Pool.QueryRow(env.ctx,
			`SELECT password FROM users WHERE username = 'dicoding'`).Scan(&stored)).To(Succeed())
		Expect(stored).NotTo(Equal("secret"))
		Expect(stored).To(HavePrefix("$2a$"))
	})

	It("rejects a duplicate and leaves a single record", func() {
		status, _ := send(http.MethodPost, "/users", newUser)
		Expect(status).To(Equal(http.StatusCreated))

		status, envelope := send(http.MethodPost, "/users", newUser)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(envelope.Status).To(Equal(web.StatusFail))
		Expect(envelope.Code).To(Equal(users.CodeUsernameNotAvailable))
		Expect(countUsers("dicoding")).To(Equal(1))
	})

	It("admits exactly one of many concurrent registrations", func() {
		const attempts = 8
		statuses := make([]int, attempts)

		var wg sync.WaitGroup
		for i := range attempts {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				statuses[i], _ = send(http.MethodPost, "/users", newUser)
			}(i)
		}
		wg.Wait()

		Expect(statuses).To(ContainElement(http.StatusCreated))
		created := 0
		for _, s := range statuses {
			if s == http.StatusCreated {
				created++
			} else {
				Expect(s).To(Equal(http.StatusBadRequest))
			}
		}
		Expect(created).To(Equal(1))
		Expect(countUsers("dicoding")).To(Equal(1))
	})

	DescribeTable("rejects invalid payloads before touching storage",
		func(payload map[string]any, code string) {
			status, envelope := send(http.MethodPost, "/users", payload)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(envelope.Code).To(Equal(code))
			Expect(countUsers("dicoding")).To(Equal(0))
		},
		Entry("missing fullname",
			map[string]any{"username": "dicoding", "password": "secret"},
			users.CodeRegisterMissingProperty),
		Entry("non-string password",
			map[string]any{"username": "dicoding", "password": 123, "fullname": "Dicoding"},
			users.CodeRegisterWrongType),
		Entry("username with whitespace",
			map[string]any{"username": "dico ding", "password": "secret", "fullname": "Dicoding"},
			users.CodeRegisterUsernameRestricted),
		Entry("blank fullname",
			map[string]any{"username": "dicoding", "password": "secret", "fullname": ""},
			users.CodeRegisterMissingProperty),
	)

	It("rejects a username containing a no-break space", func() {
		status, envelope := send(http.MethodPost, "/users", map[string]any{
			"username": "dico\u00a0ding",
			"password": "secret",
			"fullname": "Dicoding",
		})
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(envelope.Code).To(Equal(users.CodeRegisterUsernameRestricted))
		Expect(countUsers("dico\u00a0ding")).To(Equal(0))
	})
})
