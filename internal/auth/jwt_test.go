package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndParse(t *testing.T) {
	token, err := MintAccessToken("user-1", "a@example.com", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseClaims(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestParseClaims_Rejects(t *testing.T) {
	valid, err := MintAccessToken("user-1", "a@example.com", "secret", time.Hour)
	require.NoError(t, err)
	expired, err := MintAccessToken("user-1", "a@example.com", "secret", -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other"},
		{"expired", expired, "secret"},
		{"garbage", "not-a-token", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClaims(tt.token, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestMintAccessToken_EmptySecret(t *testing.T) {
	_, err := MintAccessToken("user-1", "", "", time.Hour)
	assert.Error(t, err)
}
