// Package auth supplies the bearer credential the persistence collaborator
// attaches to save requests. The simulation engine never inspects
// identity; this package exists solely for the outer save pipeline.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential is an opaque bearer token.
type Credential struct {
	Token string
}

// Bearer formats the credential as an Authorization header value.
func (c Credential) Bearer() string {
	return "Bearer " + c.Token
}

// Source supplies the current credential, refreshing it when the backing
// session rotates tokens.
type Source interface {
	Credential() (Credential, error)
}

// Static is a Source holding a fixed token.
type Static struct {
	Token string
}

// Credential returns the fixed credential.
func (s Static) Credential() (Credential, error) {
	return Credential{Token: s.Token}, nil
}

// Claims are the registered JWT claims plus the user id carried by the
// backend's tokens.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Parse validates a bearer token against the shared secret and returns
// its claims.
func Parse(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("auth: token is not valid")
	}
	return claims, nil
}

// Expired reports whether the claims expired before the given instant.
// Tokens without an expiry never expire.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Before(now)
}
