// Package auth implements the token codec and password hashing used by the
// authentication gate.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum number of bytes accepted for the signing
// secret.
const MinSecretLength = 32

// ErrInvalidToken is returned for any token the codec refuses: malformed
// structure, signature mismatch, unparsable claims, or expiry. Callers get
// one indistinguishable error so a client cannot tell tampering apart from
// garbage.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload the codec signs into every token.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies bearer tokens with a symmetric HMAC-SHA256
// secret. The secret is immutable after construction: rotating it means
// constructing a new codec, which invalidates every outstanding token.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenCodec validates the configuration and returns a codec.
func NewTokenCodec(secret string, ttl time.Duration, issuer string) (*TokenCodec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("signing secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// Issue signs a token for subject with issued-at now and expiry now+ttl.
func (c *TokenCodec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("subject must not be empty")
	}

	now := c.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and structure of rawToken and returns its
// claims. Expiry is not checked here; use IsExpired on the result. Every
// failure mode collapses into ErrInvalidToken.
func (c *TokenCodec) Decode(rawToken string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(rawToken, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IsExpired reports whether the claims' expiry has passed. A token expiring
// exactly now counts as expired.
func (c *TokenCodec) IsExpired(claims *Claims) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return true
	}
	return !claims.ExpiresAt.Time.After(c.now().UTC())
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}
