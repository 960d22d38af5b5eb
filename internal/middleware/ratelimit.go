package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RateLimit rejects requests over the configured rate with 429, keyed by
// client IP. Limiter store failures let the request through.
func RateLimit(instance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx)

		limiterCtx, err := instance.Get(ctx, c.ClientIP())
		if err != nil {
			logger.Error("rate limiter store failure", "error", err)
			c.Next()
			return
		}

		if limiterCtx.Reached {
			logger.Warn("rate limit exceeded", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}
