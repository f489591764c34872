// README: Fixed-window per-caller rate limiter backed by Redis.
package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit allows at most limit requests per caller per window. The counter
// lives in Redis (INCR + EXPIRE) so multiple instances share one budget.
// Redis errors fail open: the LLM upstream is guarded, not gated, by this.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.GetHeader("X-User-ID")
		if caller == "" {
			caller = c.ClientIP()
		}
		key := "ratelimit:" + caller

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Printf("ratelimit: redis error, allowing request: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, window)
		}
		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
