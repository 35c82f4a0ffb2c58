package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT() *JWTManager {
	return NewJWTManager(JWTConfig{
		Issuer:         "zartaaz",
		AccessSecret:   "access-secret",
		RefreshSecret:  "refresh-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 30,
	})
}

func TestJWTRoundTrip(t *testing.T) {
	m := testJWT()

	token, exp, err := m.SignAccess(42, "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := m.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "zartaaz", claims.Issuer)
}

func TestJWTSecretsAreNotInterchangeable(t *testing.T) {
	m := testJWT()

	refresh, _, err := m.SignRefresh(7, "user")
	require.NoError(t, err)

	_, err = m.ParseAccess(refresh)
	assert.Error(t, err)

	claims, err := m.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	m := testJWT()

	token, _, err := m.SignAccess(1, "user")
	require.NoError(t, err)

	_, err = m.ParseAccess(token + "x")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestHashToken(t *testing.T) {
	a := HashToken("refresh-token")
	b := HashToken("refresh-token")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashToken("other-token"))
}
