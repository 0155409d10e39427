// Package auth holds token, one-time-code and verification-policy helpers
// shared by the middleware and the auth controller.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"tmms/models"
)

// TokenTTL is how long an issued bearer token stays valid. There is no
// revocation list; logout is client-side token deletion.
const TokenTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// GenerateToken mints a signed HS256 token whose subject is the user id hex.
func GenerateToken(userID, secret string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a bearer token and returns the user id it asserts.
func ParseToken(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// RequiresVerification is the per-role email-verification policy: customers
// must verify before they can log in or receive a token, admins are trusted
// on the shared access code and skip it.
func RequiresVerification(role string) bool {
	return role != models.RoleAdmin
}
