// Package auth issues and verifies the signed identity tokens consumed by
// the HTTP middleware.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/emintt/coffee-shop-backend-23/internal/errs"
	"github.com/emintt/coffee-shop-backend-23/internal/models"
)

// Claims carries the caller's identity and role inside a JWT.
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   int    `json:"user_level_id"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims carry admin capability.
func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleSuperAdmin || c.Role == models.RoleAdmin
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

// Issue signs a token for a user; the password hash never enters the claims.
func (m *TokenManager) Issue(user *models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "coffee-shop-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token, rejecting unexpected signing
// methods, bad signatures and expired tokens.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.Forbidden("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, errs.Forbidden("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errs.Forbidden("invalid token")
	}
	return claims, nil
}
