package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/convopulse/convopulse/pkg/metrics"
)

// Metrics returns middleware that records request counters and latencies
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsActive.Inc()

		c.Next()

		metrics.HTTPRequestsActive.Dec()

		// Use the route template so cardinality stays bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}
