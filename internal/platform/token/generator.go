// Package token issues and verifies the signed session tokens handed to clients.
// A token is only a signed reference to a server-held session: the middleware
// always consults the session store, so claims alone never grant access.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator defines the interface for session token generation and parsing.
type Generator interface {
	// GenerateToken creates a signed token referencing the given session.
	GenerateToken(sessionID string, accountID uint) (string, error)

	// ParseToken verifies the token signature and returns the referenced session ID.
	ParseToken(token string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new token generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) Generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT with the session ID in the "sid" claim.
func (g *generator) GenerateToken(sessionID string, accountID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": accountID,
		"sid": sessionID,
		"exp": time.Now().Add(g.expiration).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies the signature and extracts the "sid" claim.
// Expiry here is a hint; the authoritative check happens against the session store.
func (g *generator) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", fmt.Errorf("token has no session reference")
	}
	return sid, nil
}
