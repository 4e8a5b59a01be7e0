package security

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yogapratama/leasedrive/pkg/apperr"
)

func TestHasherRoundTrip(t *testing.T) {
	// MinCost keeps the test fast; the work factor does not change semantics.
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("Sup3r$ecret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "Sup3r$ecret")

	assert.True(t, h.Verify("Sup3r$ecret", hash))
	assert.False(t, h.Verify("sup3r$ecret", hash))
	assert.False(t, h.Verify("", hash))
}

func TestHasherSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	h1, err := h.Hash("Abcdef1!")
	require.NoError(t, err)
	h2, err := h.Hash("Abcdef1!")
	require.NoError(t, err)

	// Same input, different salt, different output; both verify.
	assert.NotEqual(t, h1, h2)
	assert.True(t, h.Verify("Abcdef1!", h1))
	assert.True(t, h.Verify("Abcdef1!", h2))
}

func TestHasherMalformedStoredHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("anything", ""))
}

func TestHasherDefaultCost(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewHasher(0).Cost)
	assert.Equal(t, DefaultBcryptCost, NewHasher(99).Cost)
	assert.Equal(t, 10, NewHasher(10).Cost)
}

func TestHashTooLongPasswordSurfacesHashingError(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	// bcrypt rejects inputs over 72 bytes.
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	_, err := h.Hash(string(long))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrHashing))
}
