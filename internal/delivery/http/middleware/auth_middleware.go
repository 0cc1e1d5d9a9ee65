package middleware

import (
	"strings"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserID = "userID"
	ContextKeyClaims = "claims"
)

// AuthMiddleware provides middleware for session token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token on the request.
// It trusts the signed claims and never touches the store; handlers that
// need fresh user data re-fetch it themselves.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrNoToken
		}

		// Auth schemes are case-insensitive per RFC 7235, and clients do
		// send "bearer" in the wild.
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return domainerrors.ErrNoToken
		}
		tokenString = strings.TrimSpace(tokenString)
		if tokenString == "" {
			return domainerrors.ErrNoToken
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			// Signature mismatch, malformed token and expiry all collapse
			// into the same rejection.
			return domainerrors.ErrInvalidToken
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyClaims, claims)

		return next(c)
	}
}
