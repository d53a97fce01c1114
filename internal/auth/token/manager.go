// Package token verifies bearer tokens issued by the platform auth service.
// The mrz-service never mints tokens itself; operators authenticate upstream
// and present the resulting JWT here.
package token

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/veriscan/veriscan-backend/pkg/config"
	"github.com/veriscan/veriscan-backend/pkg/errors"
)

// Claims represents the JWT claims carried by platform access tokens
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Manager handles JWT verification
type Manager struct {
	config *config.JWTConfig
}

// NewManager creates a new token manager
func NewManager(cfg *config.JWTConfig) *Manager {
	return &Manager{config: cfg}
}

// ValidateAccessToken validates an access token and returns the claims
func (m *Manager) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.TokenInvalid()
		}
		return []byte(m.config.Secret), nil
	})

	if err != nil {
		if err.Error() == "token has invalid claims: token is expired" {
			return nil, errors.TokenExpired()
		}
		return nil, errors.TokenInvalid()
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.TokenInvalid()
	}

	if m.config.Issuer != "" && claims.Issuer != m.config.Issuer {
		return nil, errors.TokenInvalid()
	}

	return claims, nil
}
