package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/gallery/observability"
)

// Metrics records request latency by route template. Unmatched routes are
// grouped under "unmatched" to bound label cardinality.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
