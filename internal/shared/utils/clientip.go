package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP extracts the caller's address per spec.md §6: prefer the first
// non-empty entry of X-Forwarded-For, else X-Real-IP, else "unknown".
func ClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		return xri
	}
	return "unknown"
}
