package middleware

import (
	"time"

	"github.com/darisadam/bankist-server/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records HTTP metrics for each request
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Route templates keep label cardinality bounded
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		metrics.RecordHTTPRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start).Seconds())
	}
}
