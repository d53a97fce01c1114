package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veriscan/veriscan-backend/pkg/config"
	"github.com/veriscan/veriscan-backend/pkg/errors"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func testClaims(expiry time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "veriscan",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: "user-1",
		Email:  "operator@example.com",
		Role:   "operator",
	}
}

func TestValidateAccessToken(t *testing.T) {
	m := NewManager(&config.JWTConfig{Secret: "test-secret", Issuer: "veriscan"})

	tokenString := signToken(t, "test-secret", testClaims(time.Now().Add(time.Hour)))

	claims, err := m.ValidateAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "operator", claims.Role)
}

func TestValidateAccessTokenExpired(t *testing.T) {
	m := NewManager(&config.JWTConfig{Secret: "test-secret", Issuer: "veriscan"})

	tokenString := signToken(t, "test-secret", testClaims(time.Now().Add(-time.Hour)))

	_, err := m.ValidateAccessToken(tokenString)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "TOKEN_EXPIRED", appErr.Code)
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	m := NewManager(&config.JWTConfig{Secret: "test-secret", Issuer: "veriscan"})

	tokenString := signToken(t, "other-secret", testClaims(time.Now().Add(time.Hour)))

	_, err := m.ValidateAccessToken(tokenString)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "TOKEN_INVALID", appErr.Code)
}

func TestValidateAccessTokenWrongIssuer(t *testing.T) {
	m := NewManager(&config.JWTConfig{Secret: "test-secret", Issuer: "veriscan"})

	claims := testClaims(time.Now().Add(time.Hour))
	claims.Issuer = "someone-else"
	tokenString := signToken(t, "test-secret", claims)

	_, err := m.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	m := NewManager(&config.JWTConfig{Secret: "test-secret", Issuer: "veriscan"})

	_, err := m.ValidateAccessToken("not-a-jwt")
	assert.Error(t, err)
}
