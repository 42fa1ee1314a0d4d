package auth_test

import (
	"testing"

	"github.com/ErlanBelekov/blog-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashDiffersFromPlaintext(t *testing.T) {
	h := auth.NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	again, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salted hashes of the same password must differ")
}

func TestPasswordHasher_Compare(t *testing.T) {
	h := auth.NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("password123")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "password123"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), auth.ErrPasswordMismatch)
	assert.Error(t, h.Compare("not-a-bcrypt-hash", "password123"))
}

func TestNewPasswordHasher_OutOfRangeCostUsesDefault(t *testing.T) {
	h := auth.NewPasswordHasher(99)
	hash, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
