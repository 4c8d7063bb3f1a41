package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wpdmadhuranga/auth-service/internal/metrics"
)

// Metrics records latency and a request count per route. The label is
// the route template, not the raw URL, so /user/profile stays one
// series no matter how many users hit it.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			// Unmatched requests (404s) share a single bucket.
			route = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		elapsed := time.Since(start).Seconds()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(elapsed)
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}
