package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse", hash)

	assert.NoError(t, h.Compare(hash, "correct-horse"))
	assert.Error(t, h.Compare(hash, "wrong-horse"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash("short")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	// The constructor must not hand back a hasher bcrypt will reject.
	for _, cost := range []int{-1, 0, 1000} {
		h := NewBcryptHasher(cost)
		_, err := h.Hash("short")
		assert.ErrorIs(t, err, ErrPasswordTooShort, "cost %d", cost)
	}
}
