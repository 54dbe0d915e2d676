package ratelimit

import (
	"log/slog"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/taskmanager/internal/pkg/response"
)

// Observer is told about rejected requests.
type Observer interface {
	RateLimited()
}

// Middleware limits requests per client IP.
func Middleware(limiter *RateLimiter, observer Observer) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.Allow(key) {
			if observer != nil {
				observer.RateLimited()
			}
			slog.WarnContext(c.Request.Context(), "rate limit exceeded",
				slog.String("ip", key),
				slog.String("path", c.FullPath()),
			)

			retry := int(math.Ceil(limiter.RetryAfter().Seconds()))
			c.Header("Retry-After", strconv.Itoa(retry))
			response.TooManyRequests(c, "Too many requests. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
