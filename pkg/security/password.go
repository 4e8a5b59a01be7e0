// Package security holds the credential primitives: password hashing and
// single-use token issuance. Both are constructed once and passed by
// reference; there is no package-level state.
package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/yogapratama/leasedrive/pkg/apperr"
)

// DefaultBcryptCost is deliberately above bcrypt.DefaultCost; hashing is meant
// to be expensive.
const DefaultBcryptCost = 13

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	Cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &Hasher{Cost: cost}
}

// Hash produces a salted bcrypt hash of plain. The plaintext is never retained.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrHashing, err)
	}
	return string(b), nil
}

// Verify reports whether plain matches hash. Malformed stored hashes and
// mismatches both return false; verification never errors.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
