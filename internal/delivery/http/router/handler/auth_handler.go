// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// AuthHandler holds dependencies for registration, login and session handlers.
type AuthHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// RegisterRequest represents the request body for user registration.
// ProfilePicture is an optional reference to an already-uploaded asset.
type RegisterRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Password       string `json:"password" validate:"required"`
	ProfilePicture string `json:"profilePicture"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles the user registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	output, err := h.userUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       req.Password,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Only the public view goes out; the password hash never does.
	return response.Success(c, http.StatusCreated, map[string]any{
		"user": output.User.Public(),
	}, "user registered successfully")
}

// Login handles the login request and issues a session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	output, err := h.userUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"token": output.Token,
		"user":  output.User.Public(),
	}, "login successful")
}

// Me returns the decoded claims of the authenticated session.
// The guard already verified the token; no store lookup happens here.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := c.Get(middleware.ContextKeyClaims).(*service.Claims)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "invalid token")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"userId":    claims.UserID,
		"issuedAt":  claims.IssuedAt,
		"expiresAt": claims.ExpiresAt,
	}, "authenticated")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
