package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

var hashSalt string

func init() {
	// In production, set LOG_HASH_SALT environment variable.
	hashSalt = os.Getenv("LOG_HASH_SALT")
	if hashSalt == "" {
		hashSalt = "default-salt-change-in-production"
	}
}

// HashToken creates a privacy-preserving hash of a bearer token so that
// requests can be correlated in logs without the raw token ever appearing.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token + ":" + hashSalt))
	return hex.EncodeToString(hash[:])[:8]
}

// HashEmail creates a privacy-preserving hash of an email address.
func HashEmail(email string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(email) + ":" + hashSalt))
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeText redacts user-provided text, preserving only its length.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}
	return fmt.Sprintf("<redacted: %d chars>", len(text))
}
