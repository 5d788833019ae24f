// Package password hashes and verifies staff credentials with bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyPassword rejects blank input before bcrypt sees it.
	ErrEmptyPassword = errors.New("password must not be empty")
	// ErrMismatch means the password does not match the stored hash.
	ErrMismatch = errors.New("password does not match")
)

// HashPassword derives a bcrypt hash at the default cost. Staff rows
// persist the hash only, never the plain text.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword checks plain against the stored bcrypt hash.
func ComparePassword(hashed, plain string) error {
	if hashed == "" || plain == "" {
		return ErrEmptyPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}
