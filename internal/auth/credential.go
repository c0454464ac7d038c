package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrCredentialCorrupt indicates a stored hash that bcrypt cannot parse.
// A wrong password is never an error; it is a false verification result.
var ErrCredentialCorrupt = errors.New("stored credential is malformed")

// HashPassword produces an opaque, salted, one-way hash of plaintext.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
func VerifyPassword(stored, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext))

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrCredentialCorrupt
	}
}
