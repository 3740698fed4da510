package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	cacheport "go-taskbot/internal/infrastructure/cache/port"
	authmw "go-taskbot/internal/pkg/auth/presentation/middleware"
)

// DefaultChatRateLimit is how many chat messages a user may send per
// minute before getting throttled.
const DefaultChatRateLimit = 20

// ChatRateLimitFromEnv reads CHAT_RATE_LIMIT, falling back to the default.
func ChatRateLimitFromEnv() int {
	raw := os.Getenv("CHAT_RATE_LIMIT")
	if raw == "" {
		return DefaultChatRateLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultChatRateLimit
	}
	return n
}

// RateLimit throttles chat messages per user using a fixed one-minute
// window in the cache. A cache failure fails open: chat keeps working
// without throttling rather than going down with Redis.
func RateLimit(cache cacheport.Cache, perMinute int, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := authmw.CurrentUser(c)
		if user == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("chat:rl:%s:%s", user.ID, time.Now().UTC().Format("200601021504"))
		count, err := cache.Incr(c.Request.Context(), key, 2*time.Minute)
		if err != nil {
			logger.Warn("rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}
		if count > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many messages. Please slow down.",
			})
			return
		}
		c.Next()
	}
}
