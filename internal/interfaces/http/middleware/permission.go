package middleware

import (
	"github.com/gin-gonic/gin"

	"nodal/internal/infrastructure/authorization"
	"nodal/internal/shared/apperror"
	applogger "nodal/internal/shared/logger"
	"nodal/internal/shared/utils"
)

// RequirePermission enforces a casbin resource:action policy for the
// caller's role (spec.md §6 admin surface and role-gated admin routes
// section). Must run after Auth.
func RequirePermission(enforcer *authorization.Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)

		allowed, err := enforcer.Enforce(userID, resource, action)
		if err != nil {
			applogger.Get().Error("permission check failed", "error", err, "user_id", userID, "resource", resource, "action", action)
			utils.ErrorResponse(c, apperror.Internal("permission check failed", err))
			c.Abort()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, apperror.Forbidden("insufficient permissions"))
			c.Abort()
			return
		}
		c.Next()
	}
}
