package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "0810000001", "customer", testSecret, 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "0810000001", claims.PhoneNumber)
	assert.Equal(t, "customer", claims.Role)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(42, "0810000001", "customer", testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "different-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(42, "0810000001", "customer", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(42, "token-id-1", testSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "token-id-1", claims.TokenID)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	refresh, err := GenerateRefreshToken(42, "token-id-1", testSecret, 7)
	require.NoError(t, err)

	// A refresh token parses as access claims but carries no identity fields.
	claims, err := ValidateAccessToken(refresh, testSecret)
	require.NoError(t, err)
	assert.Empty(t, claims.PhoneNumber)
	assert.Empty(t, claims.Role)
}
