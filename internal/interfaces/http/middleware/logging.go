package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	applogger "nodal/internal/shared/logger"
)

// RequestLogger logs one structured line per request, matching the
// teacher's status-keyed severity: 5xx as error, 4xx as warn, else info.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID, ok := c.Get(ContextKeyUserID); ok {
			args = append(args, "user_id", userID)
		}

		switch {
		case status >= 500:
			applogger.Get().Error("request completed", args...)
		case status >= 400:
			applogger.Get().Warn("request completed", args...)
		default:
			applogger.Get().Info("request completed", args...)
		}
	}
}
