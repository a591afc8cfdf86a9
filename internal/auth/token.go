// Package auth provides bearer token issuing and resolution
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/myblog/backend/internal/models"
)

// TokenCodec issues a bearer token for a user and resolves a presented token
// back to a user id. Implementations must treat any token they cannot parse
// as models.ErrUnauthenticated; whether the id maps to a real user is the
// caller's concern.
type TokenCodec interface {
	// Issue creates a token identifying the user
	Issue(user *models.User) (string, error)
	// Subject extracts the user id carried by the token
	Subject(token string) (int, error)
}

// PlainCodec uses the decimal user id as the token. This is the scheme the
// service originally shipped with: no signing, no expiry, any integer that
// matches an existing user id passes. Kept as the default for behavioral
// parity; swap to JWTCodec via AUTH_TOKEN_SCHEME for signed tokens.
type PlainCodec struct{}

// NewPlainCodec creates a plain id-as-token codec
func NewPlainCodec() *PlainCodec {
	return &PlainCodec{}
}

// Issue returns the user id in decimal form
func (c *PlainCodec) Issue(user *models.User) (string, error) {
	return strconv.Itoa(user.ID), nil
}

// Subject parses the token as a decimal user id
func (c *PlainCodec) Subject(token string) (int, error) {
	id, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed token", models.ErrUnauthenticated)
	}
	return id, nil
}

// JWTCodec issues HS256-signed access tokens carrying the user id and role
type JWTCodec struct {
	secret string
	expiry time.Duration
}

// NewJWTCodec creates a JWT codec with the given signing secret and expiry
func NewJWTCodec(secret string, expiry time.Duration) *JWTCodec {
	return &JWTCodec{
		secret: secret,
		expiry: expiry,
	}
}

// Issue creates a signed access token with user id and role in the payload
func (c *JWTCodec) Issue(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(c.expiry).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(c.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Subject validates the token signature and extracts the user id
func (c *JWTCodec) Subject(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(c.secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrUnauthenticated, err)
	}

	if !token.Valid {
		return 0, fmt.Errorf("%w: token is invalid", models.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("%w: invalid token claims", models.ErrUnauthenticated)
	}

	// Check token type
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return 0, fmt.Errorf("%w: token is not an access token", models.ErrUnauthenticated)
	}

	// Extract user id (JWT claims decode numbers as float64)
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("%w: user_id not found in token", models.ErrUnauthenticated)
	}

	return int(userID), nil
}
