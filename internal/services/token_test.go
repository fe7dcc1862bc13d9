package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/conduitapp/conduit/internal/models"
)

const tokenTestSecret = "token-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 42, Username: "ana"}

	signed, err := IssueToken(user, tokenTestSecret)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := VerifyToken(signed, tokenTestSecret)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.ID != 42 {
		t.Errorf("Expected claim id 42, got %d", claims.ID)
	}
	if claims.Username != "ana" {
		t.Errorf("Expected claim username ana, got %s", claims.Username)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < TokenTTL-time.Minute || remaining > TokenTTL {
		t.Errorf("Expected expiry about %v out, got %v", TokenTTL, remaining)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Username: "ana"}
	signed, err := IssueToken(user, tokenTestSecret)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := VerifyToken(signed, "some-other-secret"); err == nil {
		t.Error("Expected verification to fail with the wrong secret")
	}
}

func TestVerifyTokenTampered(t *testing.T) {
	user := &models.User{ID: 1, Username: "ana"}
	signed, err := IssueToken(user, tokenTestSecret)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	tampered := signed[:len(signed)-1]
	if signed[len(signed)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}

	if _, err := VerifyToken(tampered, tokenTestSecret); err == nil {
		t.Error("Expected verification to fail for a tampered signature")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	claims := &Claims{
		ID:       1,
		Username: "ana",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tokenTestSecret))
	if err != nil {
		t.Fatalf("Failed to sign expired token: %v", err)
	}

	if _, err := VerifyToken(signed, tokenTestSecret); err == nil {
		t.Error("Expected verification to fail for an expired token")
	}
}

func TestVerifyTokenMalformed(t *testing.T) {
	if _, err := VerifyToken("not-a-token", tokenTestSecret); err == nil {
		t.Error("Expected verification to fail for a malformed token")
	}
}
