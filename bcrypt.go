package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a salted bcrypt hash at the default cost. Two
// calls with the same input produce different hashes; never compare
// hashes for equality, use ComparePasswordAndHash.
func HashPassword(password string) (string, error) {
	return HashPasswordCost(password, DefaultBcryptCost)
}

// HashPasswordCost hashes with an explicit work factor. A cost at or
// below zero falls back to DefaultBcryptCost.
func HashPasswordCost(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}
	if cost <= 0 {
		cost = DefaultBcryptCost
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

// ComparePasswordAndHash validates the given cleartext password against
// the stored hash. It fails closed: mismatches, malformed hashes, and
// every other bcrypt failure all come back as ErrMismatchedHashAndPassword.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}
	return nil
}
