// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// Register orchestrates the complete user registration process.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if err := validateRegisterInput(input); err != nil {
		srv.logger.Warn("Registration input validation failed", slog.String("email", input.Email))

		return nil, err
	}

	// Look up first so that the common duplicate case fails cheaply; the
	// store's unique index still has the final word when registrations race.
	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		srv.logger.Warn("Registration rejected, email taken", slog.String("email", input.Email))

		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("registration failed")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing user")
	}

	// bcrypt is CPU-bound, so hashing happens outside any store round trip.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("registration failed")
	}

	newUser := &entity.User{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		PasswordHash:   hashedPassword,
		ProfilePicture: input.ProfilePicture,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		srv.logger.Error("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.logger.Info("User registered", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login orchestrates the user login process. An unknown email and a wrong
// password fail with the same undifferentiated error so that login failures
// never reveal whether the email is registered.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.logger.Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Warn("Login failed", slog.String("email", input.Email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.logger.Warn("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Generate(user.ID)
	if err != nil {
		srv.logger.Error("Failed to generate token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.logger.Debug("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		Token: token,
		User:  user,
	}, nil
}

func validateRegisterInput(input *usecase.RegisterInput) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return domainerrors.ErrValidationFailed.WithDetails("name is required")
	case strings.TrimSpace(input.Email) == "":
		return domainerrors.ErrValidationFailed.WithDetails("email is required")
	case strings.TrimSpace(input.Phone) == "":
		return domainerrors.ErrValidationFailed.WithDetails("phone is required")
	case input.Password == "":
		return domainerrors.ErrValidationFailed.WithDetails("password is required")
	}

	// Loose format check only: an "@" with a domain-like suffix.
	at := strings.Index(input.Email, "@")
	if at <= 0 || !strings.Contains(input.Email[at+1:], ".") {
		return domainerrors.ErrValidationFailed.WithDetails("email format is invalid")
	}

	return nil
}
