package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims authorizes destructive admin commands for a short window.
type AdminClaims struct {
	UserID string `json:"user_id"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

// Scopes carried by admin tokens.
const (
	ScopeWipe   = "wipe"
	ScopeExport = "export"
)

// GenerateAdminToken creates a short-lived token authorizing one admin scope.
func GenerateAdminToken(userID, scope, secret string, ttl time.Duration) (string, error) {
	claims := &AdminClaims{
		UserID: userID,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAdminToken validates a token and checks it carries the wanted scope.
func ValidateAdminToken(tokenString, scope, secret string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Scope != scope {
		return nil, fmt.Errorf("token scope %q does not cover %q", claims.Scope, scope)
	}

	return claims, nil
}

// VerifyAdminKey compares a submitted key against the configured one in
// constant time.
func VerifyAdminKey(submitted, configured string) bool {
	if configured == "" {
		return false
	}
	a := sha256.Sum256([]byte(submitted))
	b := sha256.Sum256([]byte(configured))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
