package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "hunter22", hash, "hash never stores the plaintext")

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("hunter22")
	require.NoError(t, err)
	second, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same password must not produce the same hash")
	assert.True(t, CheckPasswordHash("hunter22", first))
	assert.True(t, CheckPasswordHash("hunter22", second))
}

func TestGenerateToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := GenerateToken()
		require.NotEmpty(t, token)
		assert.NotContains(t, token, "+", "token must be URL-safe")
		assert.NotContains(t, token, "/", "token must be URL-safe")
		assert.NotContains(t, token, "=", "token carries no padding")
		assert.False(t, seen[token], "tokens must not repeat")
		seen[token] = true
	}
}
