package middleware

import (
	"net/http/httputil"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"nodal/internal/shared/apperror"
	applogger "nodal/internal/shared/logger"
	"nodal/internal/shared/utils"
)

// Recovery recovers from panics in handlers, logs the stack trace with
// the Authorization header redacted, and responds with a generic 500
// rather than letting gin's default recovery dump the panic to the client.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		dump, _ := httputil.DumpRequest(c.Request, false)
		lines := strings.Split(string(dump), "\r\n")
		for i, line := range lines {
			if strings.HasPrefix(strings.ToLower(line), "authorization:") {
				lines[i] = "Authorization: *"
			}
		}

		applogger.Get().Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"headers", lines,
			"error", recovered,
			"stack", string(debug.Stack()))

		utils.ErrorResponse(c, apperror.Internal("internal server error", nil))
		c.Abort()
	})
}
