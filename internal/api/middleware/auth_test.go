package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campus-events-api/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

func newTestRouter(a *Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/me", a.VerifyJWT(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"user_id": ctx.GetUint(ContextKeyUserID),
			"role":    ctx.GetString(ContextKeyRole),
		})
	})
	router.GET("/admin", a.VerifyJWT(), a.RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestVerifyJWT(t *testing.T) {
	a := NewAuthenticator(testSigningKey)
	router := newTestRouter(a)

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(router, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := doRequest(router, "/me", "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong key", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte("other-key"), 1, "admin", "", time.Hour)
		require.NoError(t, err)

		w := doRequest(router, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 42, "student", "", time.Hour)
		require.NoError(t, err)

		w := doRequest(router, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
	})
}

func TestRequireAdmin(t *testing.T) {
	a := NewAuthenticator(testSigningKey)
	router := newTestRouter(a)

	t.Run("student is forbidden", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 10, "student", "", time.Hour)
		require.NoError(t, err)

		w := doRequest(router, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 1, "admin", "", time.Hour)
		require.NoError(t, err)

		w := doRequest(router, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("super admin passes", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 2, "super_admin", "", time.Hour)
		require.NoError(t, err)

		w := doRequest(router, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
