package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testClaims() Claims {
	return Claims{
		UserID: "user-1",
		Email:  "user@example.com",
		Roles:  []string{"reader"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "eventlens-backend",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestJWTValidator_ValidToken(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret, Issuer: "eventlens-backend"})
	require.NoError(t, err)

	signed := signToken(t, testSecret, testClaims())

	claims, err := validator.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, []string{"reader"}, claims.Roles)
}

func TestJWTValidator_BearerPrefixStripped(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	signed := signToken(t, testSecret, testClaims())

	claims, err := validator.ValidateToken("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestJWTValidator_Errors(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret, Issuer: "eventlens-backend"})
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		_, err := validator.ValidateToken("")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := validator.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		signed := signToken(t, "other-secret", testClaims())
		_, err := validator.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("expired", func(t *testing.T) {
		claims := testClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		signed := signToken(t, testSecret, claims)
		_, err := validator.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := testClaims()
		claims.Issuer = "someone-else"
		signed := signToken(t, testSecret, claims)
		_, err := validator.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("missing user id", func(t *testing.T) {
		claims := testClaims()
		claims.UserID = ""
		signed := signToken(t, testSecret, claims)
		_, err := validator.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)
}

func TestUserContextRoundTrip(t *testing.T) {
	user := &UserContext{UserID: "user-1", Email: "user@example.com"}
	ctx := SetUserInContext(context.Background(), user)

	got, err := GetUserFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = GetUserFromContext(context.Background())
	assert.Error(t, err)
}
