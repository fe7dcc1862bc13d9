package services

import (
	"fmt"
	"time"

	"github.com/conduitapp/conduit/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL is the absolute lifetime of an issued token.
const TokenTTL = 60 * 24 * time.Hour

// Claims are the identity claims embedded in an issued token.
type Claims struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueToken produces a signed token embedding the user's id, username and an
// absolute expiry 60 days from issuance.
func IssueToken(user *models.User, secret string) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:       user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the embedded claims.
// Any failure (bad signature, expired, malformed) yields an error; callers
// treat that as an authentication failure, not a transport error.
func VerifyToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
