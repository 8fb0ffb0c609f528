// Package cookie signs session tokens into the henri_session cookie value.
package cookie

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Name   = "henri_session"
	issuer = "henri-storefront"
)

var ErrInvalidToken = errors.New("invalid session cookie")

// Codec issues and verifies HS256 JWTs whose subject is the session token.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	if now != nil {
		c.now = now
	}
	return c
}

// Encode wraps the session token in a signed JWT expiring at expiresAt.
func (c *Codec) Encode(token string, expiresAt time.Time) (string, error) {
	if token == "" {
		return "", errors.New("session token is required")
	}
	claims := jwt.RegisteredClaims{
		Subject:   token,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(c.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies the signature and expiry and returns the session token.
func (c *Codec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(c.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims.Subject, nil
}
