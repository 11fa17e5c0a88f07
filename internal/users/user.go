// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package users

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/forumhub/forumhub/pkg/errutil"
)

// MaxUsernameLength is the longest accepted username, in characters.
const MaxUsernameLength = 50

// IDPrefix is prepended to every generated user ID.
const IDPrefix = "user-"

// Registration error codes.
const (
	CodeRegisterMissingProperty    = "REGISTER_USER.NOT_CONTAIN_NEEDED_PROPERTY"
	CodeRegisterWrongType          = "REGISTER_USER.NOT_MEET_DATA_TYPE_SPECIFICATION"
	CodeRegisterUsernameLimit      = "REGISTER_USER.USERNAME_LIMIT_CHAR"
	CodeRegisterUsernameRestricted = "REGISTER_USER.USERNAME_CONTAIN_RESTRICTED_CHARACTER"
)

// CodeRegisteredUserMissingProperty is returned by NewRegisteredUser.
const CodeRegisteredUserMissingProperty = "REGISTERED_USER.NOT_CONTAIN_NEEDED_PROPERTY"

// registerFields lists the payload keys a registration must carry.
var registerFields = []string{"username", "password", "fullname"}

// UserRegister is a validated registration request.
type UserRegister struct {
	username string
	password string
	fullname string
}

// NewUserRegister validates a raw registration payload.
// Rules are checked in order and the first failure is returned:
// presence, type, non-blank fullname, username length, username characters.
func NewUserRegister(payload map[string]any) (*UserRegister, error) {
	for _, key := range registerFields {
		if v, ok := payload[key]; !ok || v == nil {
			return nil, oops.In(errutil.KindValidation).
				Code(CodeRegisterMissingProperty).
				With("property", key).
				Errorf("registration payload is missing %s", key)
		}
	}

	values := make(map[string]string, len(registerFields))
	for _, key := range registerFields {
		s, ok := payload[key].(string)
		if !ok {
			return nil, oops.In(errutil.KindValidation).
				Code(CodeRegisterWrongType).
				With("property", key).
				Errorf("%s must be a string", key)
		}
		values[key] = s
	}

	// A blank fullname could be stored but never read back as a RegisteredUser.
	if strings.TrimSpace(values["fullname"]) == "" {
		return nil, oops.In(errutil.KindValidation).
			Code(CodeRegisterMissingProperty).
			With("property", "fullname").
			Errorf("registration payload is missing fullname")
	}

	username := values["username"]
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return nil, oops.In(errutil.KindValidation).
			Code(CodeRegisterUsernameLimit).
			With("max", MaxUsernameLength).
			Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if username == "" || strings.IndexFunc(username, isWhitespace) >= 0 {
		return nil, oops.In(errutil.KindValidation).
			Code(CodeRegisterUsernameRestricted).
			Errorf("username must not contain whitespace")
	}

	return &UserRegister{
		username: username,
		password: values["password"],
		fullname: values["fullname"],
	}, nil
}

// isWhitespace matches the Unicode White_Space set plus the byte order mark.
func isWhitespace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Username returns the validated username.
func (r *UserRegister) Username() string { return r.username }

// Password returns the plaintext password.
func (r *UserRegister) Password() string { return r.password }

// Fullname returns the display name.
func (r *UserRegister) Fullname() string { return r.fullname }

// WithPasswordHash derives the record handed to storage.
func (r *UserRegister) WithPasswordHash(hash string) NewUser {
	return NewUser{
		Username:     r.username,
		PasswordHash: hash,
		Fullname:     r.fullname,
	}
}

// NewUser is a registration ready to be persisted.
type NewUser struct {
	Username     string
	PasswordHash string
	Fullname     string
}

// RegisteredUser is the public view of a stored user.
type RegisteredUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// NewRegisteredUser creates a RegisteredUser, requiring every field.
func NewRegisteredUser(id, username, fullname string) (*RegisteredUser, error) {
	fields := []struct{ key, value string }{
		{"id", id},
		{"username", username},
		{"fullname", fullname},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, oops.In(errutil.KindValidation).
				Code(CodeRegisteredUserMissingProperty).
				With("property", f.key).
				Errorf("registered user is missing %s", f.key)
		}
	}
	return &RegisteredUser{ID: id, Username: username, Fullname: fullname}, nil
}

// IDGenerator produces the unique suffix of a user ID.
type IDGenerator func() string

// DefaultIDGenerator returns a lowercase ULID.
func DefaultIDGenerator() string {
	return strings.ToLower(ulid.Make().String())
}

// UserRepository manages user persistence.
type UserRepository interface {
	// VerifyAvailableUsername returns an invariant error coded
	// USER_REPOSITORY.USERNAME_NOT_AVAILABLE when username is taken.
	VerifyAvailableUsername(ctx context.Context, username string) error

	// AddUser stores a new user under a generated ID.
	// A storage-level uniqueness rejection is reported like VerifyAvailableUsername.
	AddUser(ctx context.Context, user NewUser) (*RegisteredUser, error)

	// GetPasswordByUsername returns the stored password hash.
	// Returns an error wrapping ErrNotFound if no user has the given username.
	GetPasswordByUsername(ctx context.Context, username string) (string, error)

	// GetIDByUsername returns the stored user ID.
	// Returns an error wrapping ErrNotFound if no user has the given username.
	GetIDByUsername(ctx context.Context, username string) (string, error)
}
