// Package authclaims peeks into the backend-issued session token for
// display-only hints. The token is never verified here; the backend holds
// the signing secret and enforces authorization on every call.
package authclaims

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims are the session-token fields the UI can use as hints.
type Claims struct {
	UserID string
	Email  string
	Role   string
	Expiry time.Time
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// Peek decodes the token without verifying its signature. The boolean
// reports whether the token was well-formed.
func Peek(token string) (Claims, bool) {
	var tc tokenClaims
	if _, _, err := parser.ParseUnverified(token, &tc); err != nil {
		return Claims{}, false
	}
	c := Claims{
		UserID: tc.UserID,
		Email:  tc.Email,
		Role:   tc.Role,
	}
	if tc.ExpiresAt != nil {
		c.Expiry = tc.ExpiresAt.Time
	}
	return c, true
}

// Expired reports whether the token carries an expiry in the past. A
// malformed or expiry-less token is not reported as expired; the backend's
// 401 remains the source of truth.
func Expired(token string, now time.Time) bool {
	c, ok := Peek(token)
	if !ok || c.Expiry.IsZero() {
		return false
	}
	return c.Expiry.Before(now)
}
