package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash_RejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	_, err := hasher.Hash("short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func TestHashCompare_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := hasher.Hash("correct-horse-battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse-battery", hashed)

	assert.NoError(t, hasher.Compare(hashed, "correct-horse-battery"))
	assert.Error(t, hasher.Compare(hashed, "wrong-password"))
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(0)

	hashed, err := hasher.Hash("long-enough-password")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
