package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", hash)

	assert.True(t, CheckPasswordHash("password1", hash))
	assert.False(t, CheckPasswordHash("password2", hash))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("anything", "not-a-bcrypt-hash"))
}

func TestEmailVerificationHash_Deterministic(t *testing.T) {
	// sha1十六进制，与验证链接中的哈希一致
	assert.Equal(t, "63a710569261a24b3766275b7000ce8d7b32e2f7", EmailVerificationHash("user@example.com"))
	assert.Equal(t, EmailVerificationHash("a@b.com"), EmailVerificationHash("a@b.com"))
	assert.NotEqual(t, EmailVerificationHash("a@b.com"), EmailVerificationHash("b@a.com"))
}
