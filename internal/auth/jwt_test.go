package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffTokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	tenantID := uuid.New()

	token, err := GenerateStaffToken(userID, tenantID, "manager@example.com", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseStaffToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, "manager@example.com", claims.Email)
}

func TestStaffTokenWrongSecret(t *testing.T) {
	token, err := GenerateStaffToken(uuid.New(), uuid.New(), "a@b.c", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseStaffToken(token, "other-secret")
	assert.Error(t, err)
}

func TestStaffTokenExpired(t *testing.T) {
	token, err := GenerateStaffToken(uuid.New(), uuid.New(), "a@b.c", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseStaffToken(token, "secret")
	assert.Error(t, err)
}

func portalToken(t *testing.T, subject string, tenantID uuid.UUID, secret string) string {
	t.Helper()
	claims := PortalClaims{
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestPortalTokenRoundTrip(t *testing.T) {
	tenantID := uuid.New()
	token := portalToken(t, "auth0|abc123", tenantID, "portal-secret")

	claims, err := ParsePortalToken(token, "portal-secret")
	require.NoError(t, err)
	assert.Equal(t, "auth0|abc123", claims.Subject)
	assert.Equal(t, tenantID, claims.TenantID)
}

func TestPortalTokenRequiresSubject(t *testing.T) {
	token := portalToken(t, "", uuid.New(), "portal-secret")

	_, err := ParsePortalToken(token, "portal-secret")
	assert.Error(t, err)
}
