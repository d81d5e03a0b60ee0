// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is fixed; the hash is a one-way capability with a constant work
// factor, so changing it only affects newly written hashes.
const bcryptCost = 12

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("verify password: %w", err)
}

var dummyHash string

func init() {
	hash, err := HashPassword("dummy_password_for_timing_attack_prevention")
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy hash: %v", err))
	}
	dummyHash = hash
}

// VerifyPasswordTimingSafe always performs a bcrypt comparison, even when no
// stored hash exists, so "unknown email" and "wrong password" take the same
// time. A nil or empty hash never verifies.
func VerifyPasswordTimingSafe(password string, hash *string) (bool, error) {
	hashToVerify := dummyHash
	if hash != nil && *hash != "" {
		hashToVerify = *hash
	}

	valid, err := VerifyPassword(password, hashToVerify)

	if hash == nil || *hash == "" {
		return false, nil
	}

	return valid, err
}

func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// GenerateSessionToken returns the opaque identifier handed to clients in the
// session cookie. It is a pure random value; the session store holds the claim.
func GenerateSessionToken() (string, error) {
	return GenerateSecureToken(32)
}
