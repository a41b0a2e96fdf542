package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS is out of scope for behavior per spec.md §1, but the ambient HTTP
// stack still wires it the way the teacher does: reflect an allow-listed
// origin, or "*" when none is configured.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	wildcard := len(allowedOrigins) == 1 && allowedOrigins[0] == "*"

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		c.Header("Access-Control-Allow-Origin", allowedOrigin(origin, allowedOrigins, wildcard))
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func allowedOrigin(origin string, allowed []string, wildcard bool) string {
	if wildcard {
		return "*"
	}
	for _, a := range allowed {
		if a == origin {
			return origin
		}
	}
	if len(allowed) > 0 {
		return allowed[0]
	}
	return "*"
}
