// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package security

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/forumhub/forumhub/internal/authentications"
	"github.com/forumhub/forumhub/pkg/errutil"
)

// MinSecretLength is the shortest accepted HMAC signing secret, in bytes.
const MinSecretLength = 32

// Token manager error codes.
const (
	CodeTokenConfigInvalid = "TOKEN_MANAGER.CONFIG_INVALID"
	CodeTokenSignFailed    = "TOKEN_MANAGER.SIGN_FAILED"
	CodeTokenMalformed     = "TOKEN_MANAGER.MALFORMED_TOKEN"
)

// TokenConfig configures a JWTTokenManager.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	// AccessTTL must be positive.
	AccessTTL time.Duration
	// RefreshTTL of zero issues refresh tokens without an exp claim.
	RefreshTTL time.Duration
	Issuer     string
}

// tokenClaims is the JWT body of both token kinds.
type tokenClaims struct {
	Username string `json:"username"`
	UserID   string `json:"id"`
	jwt.RegisteredClaims
}

// JWTTokenManager implements authentications.TokenManager with HS256 JWTs.
// Access and refresh tokens are signed with separate secrets.
type JWTTokenManager struct {
	cfg TokenConfig
	now func() time.Time
}

// TokenOption configures a JWTTokenManager.
type TokenOption func(*JWTTokenManager)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(m *JWTTokenManager) {
		m.now = now
	}
}

// NewJWTTokenManager creates a JWTTokenManager.
func NewJWTTokenManager(cfg TokenConfig, opts ...TokenOption) (*JWTTokenManager, error) {
	if len(cfg.AccessSecret) < MinSecretLength {
		return nil, oops.Code(CodeTokenConfigInvalid).
			With("min", MinSecretLength).
			Errorf("access secret must be at least %d bytes", MinSecretLength)
	}
	if len(cfg.RefreshSecret) < MinSecretLength {
		return nil, oops.Code(CodeTokenConfigInvalid).
			With("min", MinSecretLength).
			Errorf("refresh secret must be at least %d bytes", MinSecretLength)
	}
	if cfg.AccessTTL <= 0 {
		return nil, oops.Code(CodeTokenConfigInvalid).Errorf("access token ttl must be positive")
	}
	if cfg.RefreshTTL < 0 {
		return nil, oops.Code(CodeTokenConfigInvalid).Errorf("refresh token ttl cannot be negative")
	}

	m := &JWTTokenManager{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *JWTTokenManager) sign(payload authentications.TokenPayload, secret []byte, ttl time.Duration, kind string) (string, error) {
	now := m.now()
	claims := tokenClaims{
		Username: payload.Username,
		UserID:   payload.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Issuer:   m.cfg.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", oops.Code(CodeTokenSignFailed).With("kind", kind).Wrap(err)
	}
	return signed, nil
}

// CreateAccessToken signs an access token for payload.
func (m *JWTTokenManager) CreateAccessToken(_ context.Context, payload authentications.TokenPayload) (string, error) {
	return m.sign(payload, m.cfg.AccessSecret, m.cfg.AccessTTL, "access")
}

// CreateRefreshToken signs a refresh token for payload. Each token carries a
// random jti so repeated logins never produce the same token.
func (m *JWTTokenManager) CreateRefreshToken(_ context.Context, payload authentications.TokenPayload) (string, error) {
	return m.sign(payload, m.cfg.RefreshSecret, m.cfg.RefreshTTL, "refresh")
}

func (m *JWTTokenManager) parser() *jwt.Parser {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if m.cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.cfg.Issuer))
	}
	return jwt.NewParser(options...)
}

// VerifyRefreshToken checks the signature, issuer and expiry of token.
func (m *JWTTokenManager) VerifyRefreshToken(_ context.Context, token string) error {
	_, err := m.parser().ParseWithClaims(token, &tokenClaims{}, func(*jwt.Token) (any, error) {
		return m.cfg.RefreshSecret, nil
	})
	if err != nil {
		return authentications.InvalidRefreshToken(err)
	}
	return nil
}

// DecodePayload reads the payload of token without checking its signature.
func (m *JWTTokenManager) DecodePayload(_ context.Context, token string) (authentications.TokenPayload, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return authentications.TokenPayload{}, oops.In(errutil.KindInvariant).
			Code(CodeTokenMalformed).
			Wrap(err)
	}
	return authentications.TokenPayload{Username: claims.Username, ID: claims.UserID}, nil
}

var _ authentications.TokenManager = (*JWTTokenManager)(nil)
