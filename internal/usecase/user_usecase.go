// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// ProfilePicture is an optional reference to an already-uploaded asset.
type RegisterInput struct {
	Name           string
	Email          string
	Phone          string
	Password       string
	ProfilePicture string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the issued session token after a successful login.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
