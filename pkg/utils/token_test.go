package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateURLToken(t *testing.T) {
	tok, err := GenerateURLToken(32)
	require.NoError(t, err)
	assert.Len(t, tok, 43) // ceil(32*4/3) without padding
	assert.NotContains(t, tok, "=")
	assert.NotContains(t, tok, "+")
	assert.NotContains(t, tok, "/")
}

func TestGenerateURLTokenDefaultsLength(t *testing.T) {
	tok, err := GenerateURLToken(0)
	require.NoError(t, err)
	assert.Len(t, tok, 32) // 24 bytes encoded
}

func TestGenerateAPIKey(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := GenerateAPIKey()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, APIKeyPrefix))
		assert.False(t, seen[key], "keys must not repeat")
		seen[key] = true
	}
}
