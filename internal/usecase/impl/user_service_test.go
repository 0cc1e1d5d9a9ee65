package impl

import (
	"context"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(repo *fakeUserRepo) usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		UserRepo:     repo,
		Hasher:       stubHasher{},
		TokenService: stubTokenService{},
		Logger:       newDiscardLogger(),
	})
}

func validRegisterInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "0912345678",
		Password: "s3cretpass",
	}
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	out, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	require.NotNil(t, out)
	require.NotNil(t, out.User)

	assert.Equal(t, "Alice", out.User.Name)
	assert.Equal(t, "alice@example.com", out.User.Email)
	assert.Equal(t, "hashed:s3cretpass", out.User.PasswordHash)
	assert.NotZero(t, out.User.ID)
	assert.Equal(t, 1, repo.count())
}

func TestUserService_Register_PublicViewOmitsHash(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	out, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	view := out.User.Public()
	assert.Equal(t, out.User.ID, view.ID)
	assert.Equal(t, out.User.Email, view.Email)
	// ProfilePicture was not supplied, so the view carries an empty string.
	assert.Empty(t, view.ProfilePicture)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	input := validRegisterInput()
	input.Name = "Alice Again"
	_, err = svc.Register(context.Background(), input)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrUserAlreadyExists.ErrorCode(), appErr.ErrorCode())
	assert.Equal(t, 1, repo.count())
}

func TestUserService_Register_ValidationFailures(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*usecase.RegisterInput)
	}{
		{name: "missing name", mutate: func(in *usecase.RegisterInput) { in.Name = "  " }},
		{name: "missing email", mutate: func(in *usecase.RegisterInput) { in.Email = "" }},
		{name: "missing phone", mutate: func(in *usecase.RegisterInput) { in.Phone = "" }},
		{name: "missing password", mutate: func(in *usecase.RegisterInput) { in.Password = "" }},
		{name: "email without at", mutate: func(in *usecase.RegisterInput) { in.Email = "alice.example.com" }},
		{name: "email without domain dot", mutate: func(in *usecase.RegisterInput) { in.Email = "alice@example" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			svc := newTestUserService(repo)

			input := validRegisterInput()
			tc.mutate(input)

			_, err := svc.Register(context.Background(), input)
			require.Error(t, err)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
			assert.Equal(t, 0, repo.count())
		})
	}
}

func TestUserService_Register_HasherFailure(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(UserServiceParams{
		UserRepo:     repo,
		Hasher:       failingHasher{},
		TokenService: stubTokenService{},
		Logger:       newDiscardLogger(),
	})

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrPasswordHashFailed.ErrorCode(), appErr.ErrorCode())
	assert.Equal(t, 0, repo.count())
}

func TestUserService_Login_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	registered, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	out, err := svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-for-"+registered.User.ID.String(), out.Token)
	assert.Equal(t, registered.User.ID, out.User.ID)
}

func TestUserService_Login_FailuresAreUndifferentiated(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, wrongPasswordErr := svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})
	require.Error(t, wrongPasswordErr)

	_, unknownEmailErr := svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "s3cretpass",
	})
	require.Error(t, unknownEmailErr)

	var wrongPasswordApp, unknownEmailApp domainerrors.AppError
	require.ErrorAs(t, wrongPasswordErr, &wrongPasswordApp)
	require.ErrorAs(t, unknownEmailErr, &unknownEmailApp)

	// An attacker probing the login endpoint must not be able to tell a
	// registered email from an unknown one.
	assert.Equal(t, domainerrors.ErrInvalidCredentials.ErrorCode(), wrongPasswordApp.ErrorCode())
	assert.Equal(t, wrongPasswordApp.ErrorCode(), unknownEmailApp.ErrorCode())
	assert.Equal(t, wrongPasswordApp.Message(), unknownEmailApp.Message())
	assert.Equal(t, wrongPasswordApp.HTTPCode(), unknownEmailApp.HTTPCode())
}
