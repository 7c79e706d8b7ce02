package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matjarly/matjar/internal/metrics"
)

// PrometheusMiddleware observes per-route request counts and latency.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		// Label by route pattern so /api/products/:id stays one series.
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
