package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/ratelimit"
)

// RateLimitMiddleware admits or rejects requests before any handler runs.
// The caller key is the X-API-Key header when present, the client IP
// otherwise. A rejected request gets a 429 with Retry-After; a fail-open
// decision (cache down) is flagged in a response header instead of failing
// the request.
func RateLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerKey := c.GetHeader("X-API-Key")
		if callerKey == "" {
			callerKey = c.ClientIP()
		}

		decision := limiter.Admit(c.Request.Context(), callerKey)
		if decision.Degraded {
			c.Writer.Header().Set("X-RateLimit-Degraded", "true")
		}
		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Writer.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter,
			})
			return
		}
		c.Next()
	}
}
