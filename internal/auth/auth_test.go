package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func lowCostHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "wrong"))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour, "homehair")
	token, exp, err := m.NewAccessToken("admin@example.com", RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin@example.com", claims.Subject)
}

func TestManager_Rejects(t *testing.T) {
	m := NewManager("secret", time.Hour, "homehair")
	token, _, err := m.NewAccessToken("admin", RoleAdmin)
	require.NoError(t, err)

	other := NewManager("other", time.Hour, "homehair")
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewManager("secret", time.Hour, "homehair")
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminAuthenticator(t *testing.T) {
	a := NewAdminAuthenticator("Admin@Example.com ", lowCostHash(t, "pw"), NewManager("secret", time.Hour, "homehair"))

	s, err := a.Login("admin@example.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, s.Token)

	claims, err := a.Verify(s.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, err = a.Login("admin@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = a.Login("someone@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	unconfigured := NewAdminAuthenticator("", "", NewManager("secret", time.Hour, "homehair"))
	_, err = unconfigured.Login("a", "b")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
