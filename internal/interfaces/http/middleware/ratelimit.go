package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	applogger "nodal/internal/shared/logger"
	"nodal/internal/shared/utils"
)

const (
	rateLimitWindow = 60 * time.Second
	rateLimitMax    = 60
)

// RateLimit enforces spec.md §4.5's `rate_limit:user:{user_id}` /
// `rate_limit:anonymous` counter: 60 requests per 60s window, failing
// open (request allowed) if Redis is unavailable. Run after Auth for
// per-user limiting, or standalone for the anonymous bucket.
func RateLimit(client *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rate_limit:anonymous"
		if userID, ok := c.Get(ContextKeyUserID); ok {
			key = fmt.Sprintf("rate_limit:user:%v", userID)
		}

		ctx := c.Request.Context()
		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			applogger.Get().Warn("rate limit check failed, failing open", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, rateLimitWindow)
		}
		if count > rateLimitMax {
			utils.ErrorResponseRaw(c, 429, "rate_limited", "rate limit exceeded, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
