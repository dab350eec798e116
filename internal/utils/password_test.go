package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "secret123"))
	assert.False(t, VerifyPassword(hash, "secret124"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	// bcrypt embeds a fresh salt, so equal passwords never produce equal
	// digests and stored hashes cannot be compared directly.
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword(h1, "secret123"))
	assert.True(t, VerifyPassword(h2, "secret123"))
}

func TestVerifyPassword_MalformedDigestFailsClosed(t *testing.T) {
	for _, digest := range []string{"", "not-a-bcrypt-hash", "$2a$xx$garbage"} {
		assert.False(t, VerifyPassword(digest, "secret123"), "digest %q", digest)
	}
}
