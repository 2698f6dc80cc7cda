package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	// MinCost keeps the tests fast; production uses the default cost
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash and verify round trip", func(t *testing.T) {
		hash, err := hasher.Hash("s3cret-password")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-password", hash)
		assert.True(t, strings.HasPrefix(hash, "$2a$"))

		assert.True(t, hasher.Verify("s3cret-password", hash))
	})

	t.Run("wrong password fails verification", func(t *testing.T) {
		hash, err := hasher.Hash("s3cret-password")
		require.NoError(t, err)

		assert.False(t, hasher.Verify("wrong-password", hash))
	})

	t.Run("same input produces different hashes", func(t *testing.T) {
		first, err := hasher.Hash("s3cret-password")
		require.NoError(t, err)
		second, err := hasher.Hash("s3cret-password")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.True(t, hasher.Verify("s3cret-password", first))
		assert.True(t, hasher.Verify("s3cret-password", second))
	})

	t.Run("garbage hash fails verification", func(t *testing.T) {
		assert.False(t, hasher.Verify("anything", "not-a-bcrypt-hash"))
	})
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(-1).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
}
