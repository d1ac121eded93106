package jwtutil

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToken_Roundtrip(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, "user-1", "a@example.com", "alice")
	require.NoError(t, err)

	claims, ok := VerifyToken("secret", token)
	require.True(t, ok)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "a@example.com", claims.Email)
	require.Equal(t, "alice", claims.Username)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, "user-1", "a@example.com", "alice")
	require.NoError(t, err)

	claims, ok := VerifyToken("other-secret", token)
	require.False(t, ok)
	require.Nil(t, claims)
}

func TestVerifyToken_TamperedSignature(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, "user-1", "a@example.com", "alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	claims, ok := VerifyToken("secret", tampered)
	require.False(t, ok)
	require.Nil(t, claims)
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", -time.Minute, "user-1", "a@example.com", "alice")
	require.NoError(t, err)

	claims, ok := VerifyToken("secret", token)
	require.False(t, ok)
	require.Nil(t, claims)
}

func TestVerifyToken_Garbage(t *testing.T) {
	claims, ok := VerifyToken("secret", "not-a-token")
	require.False(t, ok)
	require.Nil(t, claims)
}
