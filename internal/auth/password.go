package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. The derived key length and cost match what the stored
// credentials were generated with, so they must not change without rehashing
// every user.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// HashPassword derives a salted scrypt hash for a new password and returns
// the salt and hash to be stored.
func HashPassword(password string) (salt, hash []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err = scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return salt, hash, nil
}

// VerifyPassword re-derives the hash of a candidate password with the stored
// salt and compares it to the stored hash in constant time.
func VerifyPassword(password string, salt, hash []byte) (bool, error) {
	candidate, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	return subtle.ConstantTimeCompare(candidate, hash) == 1, nil
}
