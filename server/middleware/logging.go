package middleware

import (
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/gallery/logger"
)

var quietPaths = []string{"/healthz", "/api/healthz", "/health", "/ping", "/metrics"}

// RequestLogger logs every request with method, path, status and duration.
// Health and metrics paths are skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if slices.Contains(quietPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}
		fields := map[string]interface{}{
			"method":              c.Request.Method,
			logger.FieldPath:      path,
			logger.FieldStatus:    status,
			logger.FieldDuration:  latency.Milliseconds(),
			"client":              c.ClientIP(),
			logger.FieldRequestID: c.GetString(logger.FieldRequestID),
		}
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}

		switch {
		case status >= 500:
			log.Error("Request completed", fields)
		case status >= 400:
			log.Warn("Request completed", fields)
		default:
			log.Debug("Request completed", fields)
		}
	}
}
