package middleware

import (
	"fmt"
	"net/http"

	"github.com/darisadam/bankist-server/internal/pkg/logger"
	"github.com/darisadam/bankist-server/internal/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware applies rate limiting based on IP address and endpoint
func RateLimitMiddleware(limiter *ratelimit.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		config := getRateLimitConfig(c.FullPath())
		key := fmt.Sprintf("ip:%s:%s", clientIP, c.FullPath())

		info, err := limiter.CheckLimitWithInfo(c.Request.Context(), key, config)
		if err != nil {
			// Fail open
			logger.Error("Rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", info.Reset.Unix()))

		if !info.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))

			logger.Warn("Rate limit exceeded",
				zap.String("ip", clientIP),
				zap.String("path", c.FullPath()),
				zap.Int("limit", info.Limit),
			)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"limit":       info.Limit,
				"retry_after": fmt.Sprintf("%d seconds", int(info.RetryAfter.Seconds())),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserRateLimitMiddleware applies rate limiting per logged-in user
func UserRateLimitMiddleware(limiter *ratelimit.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userName, exists := c.Get(ContextUserName)
		if !exists {
			c.Next()
			return
		}

		config := getRateLimitConfig(c.FullPath())
		key := fmt.Sprintf("user:%s:%s", userName, c.FullPath())

		info, err := limiter.CheckLimitWithInfo(c.Request.Context(), key, config)
		if err != nil {
			logger.Error("User rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-User-Limit", fmt.Sprintf("%d", info.Limit))
		c.Header("X-RateLimit-User-Remaining", fmt.Sprintf("%d", info.Remaining))

		if !info.Allowed {
			logger.Warn("User rate limit exceeded",
				zap.Any("user_name", userName),
				zap.String("path", c.FullPath()),
			)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "User rate limit exceeded",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitConfig returns appropriate rate limit based on endpoint
func getRateLimitConfig(path string) ratelimit.RateLimitConfig {
	switch path {
	case "/api/v1/auth/login":
		return ratelimit.LoginRateLimit
	case "/api/v1/transfers", "/api/v1/loans", "/api/v1/account/close":
		return ratelimit.CommandRateLimit
	default:
		return ratelimit.GeneralRateLimit
	}
}
