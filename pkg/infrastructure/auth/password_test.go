package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndCheck(t *testing.T) {
	passwords := NewPasswordManager()

	hash, err := passwords.Hash("qwerty123")
	require.NoError(t, err)
	require.NotEqual(t, "qwerty123", hash)

	ok, err := passwords.Check(hash, "qwerty123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = passwords.Check(hash, "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)
}
