package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)

	tok, err := issuer.Generate("user-1")
	require.NoError(t, err)

	claims, err := issuer.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute)

	tok, err := issuer.Generate("user-1")
	require.NoError(t, err)

	_, err = issuer.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := NewTokenIssuer("a", time.Minute).Generate("user-1")
	require.NoError(t, err)

	_, err = NewTokenIssuer("b", time.Minute).Parse(tok)
	assert.Error(t, err)
}
