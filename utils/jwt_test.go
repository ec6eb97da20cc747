package utils

import (
	"testing"
	"time"

	"pawroute/config"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("walker-42", "walker", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, role, err := ExtractIdentityFromToken(token)
	require.NoError(t, err)
	require.Equal(t, "walker-42", sub)
	require.Equal(t, "walker", role)
}

func TestExpiredTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("client-1", "client", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractIdentityFromToken(token)
	require.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("client-1", "client", time.Hour)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "a-different-secret"
	_, _, err = ExtractIdentityFromToken(token)
	require.Error(t, err)
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("same-token")
	b := HashToken("same-token")
	require.Equal(t, a, b)
	require.NotEqual(t, a, HashToken("other-token"))
	require.Len(t, a, 64)
}
