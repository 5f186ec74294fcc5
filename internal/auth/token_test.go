package auth

import (
	"testing"
	"time"

	"medialane/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret)
	user := &models.User{ID: 7, UserName: "alice", Role: models.RoleVideoClient}

	token, issued, err := m.Issue(user, ClientTokenTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, issued.RegisteredClaims.ID)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ID)
	assert.Equal(t, "alice", claims.UserName)
	assert.Equal(t, models.RoleVideoClient, claims.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager(testSecret)
	past := time.Now().Add(-8 * 24 * time.Hour)
	m.now = func() time.Time { return past }

	token, _, err := m.Issue(&models.User{ID: 1, UserName: "bob", Role: models.RoleViewerClient}, ClientTokenTTL)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager(testSecret).Issue(&models.User{ID: 1, UserName: "bob"}, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret-that-is-also-long-enough").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		ID:       1,
		UserName: "mallory",
		Role:     models.RoleSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret).Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_EmptySecret(t *testing.T) {
	_, _, err := NewTokenManager("").Issue(&models.User{ID: 1, UserName: "x"}, time.Hour)
	assert.Error(t, err)
}

func TestTTLFor(t *testing.T) {
	assert.Equal(t, AdminTokenTTL, TTLFor(models.RoleAdmin))
	assert.Equal(t, AdminTokenTTL, TTLFor(models.RoleSuperAdmin))
	assert.Equal(t, ClientTokenTTL, TTLFor(models.RoleAdsClient))
}
