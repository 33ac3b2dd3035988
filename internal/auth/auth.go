// Package auth handles password hashing and session tokens.
package auth

import (
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
)

func HashPassword(password string) (string, error) {
	hashed_pw, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("internal/auth: pw hash failed: %w", err)
	}

	return hashed_pw, nil
}

// CheckPasswordHash reports whether password matches hash. An error means the
// stored hash could not be parsed, not that the password was wrong.
func CheckPasswordHash(password, hash string) (bool, error) {
	isMatch, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("internal/auth: pw and hash comparison failed: %w", err)
	}

	return isMatch, nil
}

// NewSessionToken mints a fresh opaque bearer token. Tokens are random UUIDs
// stored server-side; they carry no claims and never expire.
func NewSessionToken() uuid.UUID {
	return uuid.New()
}
