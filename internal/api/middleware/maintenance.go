package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/darisadam/bankist-server/internal/pkg/logger"
)

const MaintenanceKey = "bankist:maintenance"

// MaintenanceMiddleware checks if the system is in maintenance mode
func MaintenanceMiddleware(redisClient *redis.Client, bypassToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Public health/metrics endpoints should always be accessible
		path := c.Request.URL.Path
		if path == "/health" || path == "/ready" || path == "/metrics" || path == "/" {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Millisecond)
		defer cancel()

		val, err := redisClient.Get(ctx, MaintenanceKey).Result()
		if err != nil && err != redis.Nil {
			// Fail open if Redis is down
			logger.Error("Failed to check maintenance mode", zap.Error(err))
			c.Next()
			return
		}

		if val == "true" {
			if bypassToken != "" && c.GetHeader("X-Maintenance-Bypass") == bypassToken {
				c.Next()
				return
			}

			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Service under maintenance",
				"message": "Bankist is being updated. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
