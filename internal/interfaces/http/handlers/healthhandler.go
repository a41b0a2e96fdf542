package handlers

import (
	"github.com/gin-gonic/gin"
)

// Health responds 200 plain-text, per spec.md §6 ("All JSON except
// /sub/:token (YAML) and /health (plain text)").
func Health(c *gin.Context) {
	c.String(200, "ok")
}
