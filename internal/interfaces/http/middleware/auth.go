// Package middleware holds the gin middleware chain: auth, admin RBAC,
// rate limiting, CORS, recovery, and request logging.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"nodal/internal/infrastructure/auth"
	"nodal/internal/shared/apperror"
	"nodal/internal/shared/utils"
)

const (
	ContextKeyUserID  = "user_id"
	ContextKeyIsAdmin = "is_admin"
)

// Auth requires a valid bearer token and sets user_id/is_admin in the gin
// context, per spec.md §6's authenticated-route contract.
func Auth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, apperror.Unauthorized("missing authorization token"))
			c.Abort()
			return
		}

		userID, claims, err := jwtService.Verify(token)
		if err != nil {
			utils.ErrorResponse(c, apperror.Unauthorized("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin rejects any request whose token didn't carry is_admin=true.
// Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, _ := c.Get(ContextKeyIsAdmin)
		if admin, ok := isAdmin.(bool); !ok || !admin {
			utils.ErrorResponse(c, apperror.Forbidden("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID reads the authenticated caller's ID, panicking if Auth never ran
// — a programmer error, since every route that calls this is registered
// behind the Auth middleware.
func UserID(c *gin.Context) uint {
	v, _ := c.Get(ContextKeyUserID)
	return v.(uint)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
