package middleware

import (
	"net/http"
	"strings"

	"blog_crud_jwt/pkg/response"
	"blog_crud_jwt/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Identity is the request-scoped caller identity decoded from the token.
// It is threaded through the gin context instead of any global state.
type Identity struct {
	ID           string
	Firstname    string
	Lastname     string
	Username     string
	ProfileImage string
}

// AdminChecker re-reads the caller's admin flag from the store. The token
// deliberately does not carry it.
type AdminChecker interface {
	IsAdmin(id string) (bool, error)
}

const identityKey = "callerIdentity"

// CallerIdentity extracts the identity set by AuthMiddleware.
func CallerIdentity(c *gin.Context) (Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := val.(Identity)
	return id, ok
}

// AuthMiddleware decodes the "x-auth-token: JWT <token>" header and
// attaches the caller identity. Missing header: 401. Malformed token: 400.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("x-auth-token")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
			c.Abort()
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "JWT" {
			response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid token provided.")
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{
			ID:           claims.UserID,
			Firstname:    claims.Firstname,
			Lastname:     claims.Lastname,
			Username:     claims.Username,
			ProfileImage: claims.ProfileImage,
		})

		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller identity when a valid token is
// present but never rejects the request. Public reads use it so features
// like view deduplication can see the viewer without requiring a login.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("x-auth-token")
		parts := strings.Split(header, " ")
		if header == "" || len(parts) != 2 || parts[0] != "JWT" {
			c.Next()
			return
		}

		if claims, err := utils.ParseToken(parts[1]); err == nil {
			c.Set(identityKey, Identity{
				ID:           claims.UserID,
				Firstname:    claims.Firstname,
				Lastname:     claims.Lastname,
				Username:     claims.Username,
				ProfileImage: claims.ProfileImage,
			})
		}

		c.Next()
	}
}

// AdminMiddleware requires the caller's current admin flag, fetched fresh
// from the store. Run after AuthMiddleware.
func AdminMiddleware(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CallerIdentity(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
			c.Abort()
			return
		}

		isAdmin, err := checker.IsAdmin(identity.ID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Something went wrong.")
			c.Abort()
			return
		}
		if !isAdmin {
			response.Error(c, http.StatusForbidden, "Access denied because user is not admin.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// SelfOrAdminMiddleware allows the owner of the path resource or an admin.
// The resource owner id is taken from the named path parameter.
func SelfOrAdminMiddleware(checker AdminChecker, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CallerIdentity(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
			c.Abort()
			return
		}

		if c.Param(param) == identity.ID {
			c.Next()
			return
		}

		isAdmin, err := checker.IsAdmin(identity.ID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Something went wrong.")
			c.Abort()
			return
		}
		if !isAdmin {
			response.Error(c, http.StatusForbidden, "User does not have rights to modify this data.")
			c.Abort()
			return
		}

		c.Next()
	}
}
