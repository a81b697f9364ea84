package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog_crud_jwt/internal/pkg/config"
	"blog_crud_jwt/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type staticAdminChecker struct {
	admins map[string]bool
}

func (c *staticAdminChecker) IsAdmin(id string) (bool, error) {
	return c.admins[id], nil
}

func init() {
	gin.SetMode(gin.TestMode)
	config.GlobalConfig.JWT.Secret = "unit-test-secret-key-of-sufficient-len"
	config.GlobalConfig.JWT.Expire = 1
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		identity, _ := CallerIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID, "username": identity.Username})
	})
	return r
}

func issueToken(t *testing.T, userID, username string) string {
	t.Helper()
	token, err := utils.GenerateToken(userID, "First", "Last", username, "")
	assert.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	t.Run("Missing header is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Access denied. No token provided.")
	})

	t.Run("Wrong scheme is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("x-auth-token", "Bearer "+issueToken(t, "u1", "alice"))

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Garbage token is a bad request", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("x-auth-token", "JWT not-a-token")

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token provided.")
	})

	t.Run("Valid token attaches the identity", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("x-auth-token", "JWT "+issueToken(t, "u1", "alice"))

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "u1", body["id"])
		assert.Equal(t, "alice", body["username"])
	})
}

func TestAdminMiddleware(t *testing.T) {
	checker := &staticAdminChecker{admins: map[string]bool{"admin-1": true}}

	r := gin.New()
	r.GET("/admin", AuthMiddleware(), AdminMiddleware(checker), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("Non-admin is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("x-auth-token", "JWT "+issueToken(t, "pleb-1", "pleb"))

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Access denied because user is not admin.")
	})

	t.Run("Admin passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("x-auth-token", "JWT "+issueToken(t, "admin-1", "root"))

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSelfOrAdminMiddleware(t *testing.T) {
	checker := &staticAdminChecker{admins: map[string]bool{"admin-1": true}}

	r := gin.New()
	r.DELETE("/users/:id", AuthMiddleware(), SelfOrAdminMiddleware(checker, "id"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("Self passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/users/u1", nil)
		req.Header.Set("x-auth-token", "JWT "+issueToken(t, "u1", "alice"))

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Foreign non-admin is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/users/u2", nil)
		req.Header.Set("x-auth-token", "JWT "+issueToken(t, "u1", "alice"))

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "User does not have rights to modify this data.")
	})

	t.Run("Admin passes for any target", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/users/u2", nil)
		req.Header.Set("x-auth-token", "JWT "+issueToken(t, "admin-1", "root"))

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
