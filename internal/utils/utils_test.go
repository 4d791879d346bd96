package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundhaus/booking-api/internal/utils"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, utils.VerifyPassword(hash, "s3cret"))
	assert.False(t, utils.VerifyPassword(hash, "wrong"))
}

func TestNewAccessTokenClaims(t *testing.T) {
	at, err := utils.NewAccessToken("test-secret", 42, "customer", 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "customer", claims["role"])
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := utils.NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)

	h1 := utils.HashRefreshRaw(rt.Raw)
	h2 := utils.HashRefreshRaw(rt.Raw)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, rt.Raw, h1)
	assert.Len(t, h1, 64) // sha-256 hex

	other, err := utils.NewRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, rt.Raw, other.Raw)
}
