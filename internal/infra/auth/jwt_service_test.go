package auth

import (
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{AccessTokenTTL: ttl},
	}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig("test_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	userID := uuid.New()

	token, err := svc.Generate(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)

	// The expiry is one TTL after issuance.
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	secret := "test_secret_key_very_long_for_testing"
	svc, err := NewJWTService(newTestJWTConfig(secret, time.Hour))
	require.NoError(t, err)

	// A token with an expiry in the past, signed with the correct secret.
	userID := uuid.New()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)

	claims, validateErr := svc.Validate(signed)
	assert.Error(t, validateErr)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestJWTConfig("secret_one_very_long_for_testing", time.Hour))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestJWTConfig("secret_two_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	token, err := issuer.Generate(uuid.New())
	require.NoError(t, err)

	claims, validateErr := verifier.Validate(token)
	assert.Error(t, validateErr)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsMalformedToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig("test_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	for _, token := range []string{"", "clearly-not-a-jwt", "a.b.c"} {
		claims, validateErr := svc.Validate(token)
		assert.Error(t, validateErr, "token %q should be rejected", token)
		assert.Nil(t, claims)
	}
}

func TestJWTService_RejectsUnexpectedSigningMethod(t *testing.T) {
	secret := "test_secret_key_very_long_for_testing"
	svc, err := NewJWTService(newTestJWTConfig(secret, time.Hour))
	require.NoError(t, err)

	// alg=none is never acceptable, even with a well-formed payload.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, validateErr := svc.Validate(token)
	assert.Error(t, validateErr)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig("", time.Hour))
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_DefaultTTL(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_secret_key_very_long_for_testing"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.(*jwtService).ttl)
}
