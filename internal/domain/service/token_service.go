package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the decoded payload of a session token. The subject is the
// user's ID; issuance and expiry come from the embedded registered claims.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session tokens.
// Verification is pure: signature and expiry check only, no I/O.
type TokenService interface {
	// Generate issues a new signed token bound to the given user ID,
	// expiring after the configured lifetime.
	Generate(userID uuid.UUID) (string, error)

	// Validate checks the signature and expiry of a token string and
	// returns its claims. Malformed, tampered and expired tokens all fail.
	Validate(tokenString string) (*Claims, error)
}
