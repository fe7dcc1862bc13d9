package services

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/conduitapp/conduit/internal/models"
	"golang.org/x/crypto/pbkdf2"
)

// Key derivation parameters. The iteration count and key length match the
// values the credentials were originally derived with; changing them
// invalidates every stored hash.
const (
	pbkdf2Iterations = 40000
	pbkdf2KeyLength  = 512
	saltBytes        = 16
)

// SetPassword generates a fresh random salt and derives a PBKDF2-SHA512 hash
// from the plaintext, storing both on the user as hex strings. The plaintext
// itself is never stored.
func SetPassword(user *models.User, plaintext string) error {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	user.Salt = hex.EncodeToString(salt)
	user.Hash = deriveHash(plaintext, user.Salt)
	return nil
}

// ValidatePassword re-derives the hash with the stored salt and compares it
// against the stored hash in constant time. Wrong input yields false, never
// an error.
func ValidatePassword(user *models.User, plaintext string) bool {
	if user.Salt == "" || user.Hash == "" {
		return false
	}
	derived := deriveHash(plaintext, user.Salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(user.Hash)) == 1
}

func deriveHash(plaintext, salt string) string {
	// The salt is fed to the KDF as its hex representation, matching how the
	// stored credentials were originally produced.
	key := pbkdf2.Key([]byte(plaintext), []byte(salt), pbkdf2Iterations, pbkdf2KeyLength, sha512.New)
	return hex.EncodeToString(key)
}
