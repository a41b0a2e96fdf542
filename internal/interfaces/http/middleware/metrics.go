package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nodal/internal/infrastructure/metrics"
)

// Metrics records one HTTP request observation per call, keyed by the
// matched route template (c.FullPath()) rather than the raw path so
// cardinality stays bounded across tokenized/ID-bearing routes.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
