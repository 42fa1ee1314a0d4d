package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/blog-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records latency and count per route template, so /api/blogs/:id
// stays one series regardless of the id.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		duration := time.Since(start).Seconds()

		metrics.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	}
}
