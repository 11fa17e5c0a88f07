// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package security

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/forumhub/forumhub/pkg/errutil"
)

// OWASP-recommended argon2id parameters.
const (
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism
	argon2SaltLen = 16        // salt length in bytes
	argon2KeyLen  = 32        // output length in bytes
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 12

// Hasher error codes.
const (
	CodeWrongCredentials = "PASSWORD_HASH.WRONG_CREDENTIALS"
	CodeEmptyPassword    = "PASSWORD_HASH.EMPTY_PASSWORD"
	CodePasswordTooLong  = "PASSWORD_HASH.PASSWORD_TOO_LONG"
	CodeInvalidHash      = "PASSWORD_HASH.INVALID_HASH"
	CodeHashFailed       = "PASSWORD_HASH.HASH_FAILED"
)

// DummyArgon2idHash is an argon2id hash, in this package's parameters, that
// matches no password.
//
//nolint:gosec // G101: intentionally fake hash used to equalize login timing, not a credential.
const DummyArgon2idHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// ErrWrongCredentials is returned when a password does not match its hash.
var ErrWrongCredentials = errors.New("wrong credentials")

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash produces an encoded hash of the password.
	Hash(ctx context.Context, password string) (string, error)

	// Compare checks the password against an encoded hash.
	// Returns nil on match and an authentication error coded
	// PASSWORD_HASH.WRONG_CREDENTIALS on mismatch.
	Compare(ctx context.Context, password, hash string) error
}

// DummyHasher is implemented by hashers that supply a hash matching no
// password whose verification costs the same as a real one.
type DummyHasher interface {
	DummyHash() string
}

// DummyHashFor returns the dummy hash of h, or DummyArgon2idHash when h
// does not supply one.
func DummyHashFor(h PasswordHasher) string {
	if d, ok := h.(DummyHasher); ok {
		return d.DummyHash()
	}
	return DummyArgon2idHash
}

func wrongCredentials() error {
	return oops.In(errutil.KindAuthentication).
		Code(CodeWrongCredentials).
		Wrap(ErrWrongCredentials)
}

func emptyPassword() error {
	return oops.In(errutil.KindValidation).
		Code(CodeEmptyPassword).
		Errorf("password cannot be empty")
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}

// Argon2idHasher implements PasswordHasher using argon2id.
// Compare also accepts bcrypt hashes so imported accounts keep working.
type Argon2idHasher struct{}

// NewArgon2idHasher creates a new Argon2idHasher.
func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{}
}

// DummyHash returns DummyArgon2idHash.
func (h *Argon2idHasher) DummyHash() string { return DummyArgon2idHash }

// Hash produces an argon2id hash of the password.
func (h *Argon2idHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", oops.Code(CodeHashFailed).Wrap(err)
	}
	if password == "" {
		return "", emptyPassword()
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code(CodeHashFailed).With("operation", "generate salt").Wrap(err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return encoded, nil
}

// Compare checks the password against an argon2id or bcrypt hash.
func (h *Argon2idHasher) Compare(ctx context.Context, password, encodedHash string) error {
	if err := ctx.Err(); err != nil {
		return oops.Code(CodeHashFailed).Wrap(err)
	}
	if isBcryptHash(encodedHash) {
		return compareBcrypt(password, encodedHash)
	}

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return oops.Code(CodeInvalidHash).Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return oops.Code(CodeInvalidHash).Errorf("unsupported hash algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return oops.Code(CodeInvalidHash).Wrap(err)
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return oops.Code(CodeInvalidHash).Wrap(err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return oops.Code(CodeInvalidHash).Wrap(err)
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return oops.Code(CodeInvalidHash).Wrap(err)
	}

	if time < 1 || threads < 1 {
		return oops.Code(CodeInvalidHash).
			With("time", time).
			With("threads", threads).
			Errorf("argon2id time and threads must be at least 1")
	}
	if threads > 255 {
		return oops.Code(CodeInvalidHash).Errorf("threads value %d exceeds uint8 max", threads)
	}

	keyLen := len(expectedHash)
	if keyLen <= 0 || keyLen > 1<<30 {
		return oops.Code(CodeInvalidHash).Errorf("invalid hash key length: %d", keyLen)
	}

	computedHash := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(keyLen))

	if subtle.ConstantTimeCompare(computedHash, expectedHash) != 1 {
		return wrongCredentials()
	}
	return nil
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost  int
	dummy string
}

// NewBcryptHasher creates a BcryptHasher with the given cost.
// It hashes a random secret once so DummyHash carries the same cost.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, oops.Code("PASSWORD_HASH.INVALID_COST").
			With("cost", cost).
			Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, oops.Code(CodeHashFailed).With("operation", "generate dummy secret").Wrap(err)
	}
	dummy, err := bcrypt.GenerateFromPassword(secret, cost)
	if err != nil {
		return nil, oops.Code(CodeHashFailed).With("operation", "hash dummy secret").Wrap(err)
	}
	return &BcryptHasher{cost: cost, dummy: string(dummy)}, nil
}

// DummyHash returns a hash of a discarded random secret at the configured cost.
func (h *BcryptHasher) DummyHash() string { return h.dummy }

// Hash produces a bcrypt hash of the password.
func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", oops.Code(CodeHashFailed).Wrap(err)
	}
	if password == "" {
		return "", emptyPassword()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", oops.In(errutil.KindValidation).
			Code(CodePasswordTooLong).
			With("max", 72).
			Errorf("password must be at most 72 bytes")
	}
	if err != nil {
		return "", oops.Code(CodeHashFailed).Wrap(err)
	}
	return string(hash), nil
}

// Compare checks the password against a bcrypt hash.
func (h *BcryptHasher) Compare(ctx context.Context, password, hash string) error {
	if err := ctx.Err(); err != nil {
		return oops.Code(CodeHashFailed).Wrap(err)
	}
	return compareBcrypt(password, hash)
}

func compareBcrypt(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return wrongCredentials()
	default:
		return oops.Code(CodeInvalidHash).Wrap(err)
	}
}

var (
	_ PasswordHasher = (*Argon2idHasher)(nil)
	_ PasswordHasher = (*BcryptHasher)(nil)
	_ DummyHasher    = (*Argon2idHasher)(nil)
	_ DummyHasher    = (*BcryptHasher)(nil)
)
