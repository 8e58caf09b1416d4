package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fanfare-backend/internal/core/auth"
)

func authFixture(requireRole string) (*gin.Engine, *auth.JWTer) {
	gin.SetMode(gin.TestMode)
	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "fanfare-backend", TTL: time.Hour}
	r := gin.New()
	r.GET("/", AuthJWT(j, requireRole), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString(KeyUserID), "role": c.GetString(KeyRole)})
	})
	return r, j
}

func TestAuthJWTMissingSession(t *testing.T) {
	r, _ := authFixture("")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthJWTCookie(t *testing.T) {
	r, j := authFixture("")
	token, err := j.Issue("user-1", "member")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthJWTBearer(t *testing.T) {
	r, j := authFixture("")
	token, err := j.Issue("user-1", "member")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthJWTGarbageToken(t *testing.T) {
	r, _ := authFixture("")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthJWTRoleGate(t *testing.T) {
	r, j := authFixture("admin")
	memberToken, err := j.Issue("user-1", "member")
	require.NoError(t, err)
	adminToken, err := j.Issue("user-2", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
