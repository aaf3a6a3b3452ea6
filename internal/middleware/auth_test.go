package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syndesk/syndesk/internal/auth"
)

const testSecret = "test-secret"

func portalRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(PortalAuth(testSecret))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"external_user_id": GetExternalUserID(c),
			"tenant_id":        GetTenantID(c),
		})
	})
	return router
}

func signedPortalToken(t *testing.T, subject string, tenantID uuid.UUID) string {
	t.Helper()
	claims := auth.PortalClaims{
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestPortalAuthMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	portalRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPortalAuthMalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	portalRouter().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPortalAuthInvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	portalRouter().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPortalAuthValidToken(t *testing.T) {
	tenantID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signedPortalToken(t, "auth0|u1", tenantID))
	rec := httptest.NewRecorder()
	portalRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "auth0|u1")
	assert.Contains(t, rec.Body.String(), tenantID.String())
}

func TestStaffAuthValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	tenantID := uuid.New()
	token, err := auth.GenerateStaffToken(userID, tenantID, "m@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.Use(StaffAuth(testSecret))
	router.GET("/ping", func(c *gin.Context) {
		assert.Equal(t, userID, GetUserID(c))
		assert.Equal(t, tenantID, GetTenantID(c))
		assert.Equal(t, "m@example.com", GetEmail(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
