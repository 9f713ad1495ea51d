package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Minute)

	token, err := tokens.Issue("ivan@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ivan@example.com", email)
}

func TestVerifyExpiredToken(t *testing.T) {
	tokens := NewTokenManager("test-secret", -time.Minute)

	token, err := tokens.Issue("ivan@example.com")
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issued, err := NewTokenManager("secret-one", time.Minute).Issue("ivan@example.com")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-two", time.Minute).Verify(issued)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Minute)

	_, err := tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
