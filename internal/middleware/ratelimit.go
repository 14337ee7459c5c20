package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	loginRateLimitMax    = 10
	loginRateLimitWindow = time.Minute
)

// LoginRateLimit throttles credential endpoints per client IP to slow
// brute-force attempts. Fails open when Redis is unavailable.
func LoginRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := time.Now().Unix() / int64(loginRateLimitWindow.Seconds())
		key := fmt.Sprintf("agenda:rate_limit:login:%s:%d", ip, window)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, loginRateLimitWindow+time.Second)
		}

		if count > loginRateLimitMax {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Muitas tentativas. Tente novamente em instantes.",
			})
			return
		}
		c.Next()
	}
}
