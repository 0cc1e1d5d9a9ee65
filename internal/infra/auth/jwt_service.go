// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"storefront/config"
	"storefront/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string        // Secret key for signing session tokens.
	ttl    time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := time.Hour
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret: cfg.SecretKey.Access,
		ttl:    ttl,
	}, nil
}

// Generate creates a new signed session token bound to the given user ID.
func (s *jwtService) Generate(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks the signature and expiry of a token string.
// jwt/v5 rejects expired tokens during parsing, so a returned claims value
// is both authentic and current.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	if claims.UserID == uuid.Nil {
		// Fall back to the registered subject for tokens issued without
		// the custom field.
		parsed, parseErr := uuid.Parse(claims.Subject)
		if parseErr != nil {
			return nil, errors.New("token has no subject user id")
		}
		claims.UserID = parsed
	}

	return claims, nil
}
