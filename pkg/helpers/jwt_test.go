package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	access, aexp, err := m.GenerateAccessToken("u1", "a@x", "sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), aexp, 5*time.Second)

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@x", claims.Email)
	assert.Equal(t, "sid-1", claims.SessionID)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err, "access token must not verify with the refresh secret")
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)

	access, _, err := m.GenerateAccessToken("u1", "a@x", "sid")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(access)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CompareHashAndPassword(hash, "s3cret-pass"))
	assert.False(t, CompareHashAndPassword(hash, "wrong"))
}
