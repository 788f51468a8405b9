// Package credentials provides one-way password hashing and verification.
package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// Hasher hashes plaintext passwords and verifies candidates against stored
// hash tokens. Implementations must salt every hash with fresh randomness
// and compare in constant time.
type Hasher interface {
	// Hash produces a self-describing hash token (algorithm id, cost and
	// salt embedded) from a plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether password matches the stored hash token.
	// A malformed token yields false, never an error.
	Verify(password, hash string) bool
}

// BcryptHasher implements Hasher using bcrypt. The produced token carries
// the algorithm version, cost and salt ($2a$10$...), so verification stays
// correct if the configured cost changes later.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the given cost. Costs outside
// bcrypt's supported range fall back to the default (10).
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
