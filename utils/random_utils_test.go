package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPassword_Length(t *testing.T) {
	p, err := RandomPassword(16)
	require.NoError(t, err)
	assert.Len(t, p, 16)
}

func TestRandomPassword_MinimumLengthEnforced(t *testing.T) {
	// 邀请口令下限为10位，过短的请求被提升
	for _, n := range []int{0, 1, 9} {
		p, err := RandomPassword(n)
		require.NoError(t, err)
		assert.Len(t, p, 10)
	}
}

func TestRandomPassword_Charset(t *testing.T) {
	p, err := RandomPassword(64)
	require.NoError(t, err)
	for _, c := range p {
		assert.True(t, strings.ContainsRune(passwordAlphabet, c), "unexpected character %q", c)
	}
}

func TestRandomPassword_NotRepeating(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		p, err := RandomPassword(10)
		require.NoError(t, err)
		assert.False(t, seen[p], "duplicate password generated")
		seen[p] = true
	}
}
