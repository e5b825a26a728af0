package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/gallery/component"
	"github.com/kbukum/gallery/version"
)

// HealthPaths are the aliases served by the single health handler.
var HealthPaths = []string{"/healthz", "/api/healthz", "/health", "/ping"}

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

type healthReport struct {
	Status     component.HealthStatus `json:"status"`
	Service    string                 `json:"service"`
	Version    string                 `json:"version"`
	Timestamp  string                 `json:"timestamp"`
	Components []component.Health     `json:"components"`
}

var severity = map[component.HealthStatus]int{
	component.StatusHealthy:   0,
	component.StatusDegraded:  1,
	component.StatusUnhealthy: 2,
}

// overall is the worst status among hs.
func overall(hs []component.Health) component.HealthStatus {
	worst := component.StatusHealthy
	for _, h := range hs {
		if severity[h.Status] > severity[worst] {
			worst = h.Status
		}
	}
	return worst
}

// Health reports the service and each component. Only an unhealthy
// component fails the check; degraded ones still answer 200.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	build := version.Get().Short()
	return func(c *gin.Context) {
		report := healthReport{
			Service:    serviceName,
			Version:    build,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Components: []component.Health{},
		}
		if checker != nil {
			if hs := checker(c.Request.Context()); hs != nil {
				report.Components = hs
			}
		}
		report.Status = overall(report.Components)

		code := http.StatusOK
		if report.Status == component.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, report)
	}
}

// RegisterHealth mounts Health on every alias in HealthPaths.
func RegisterHealth(r gin.IRoutes, serviceName string, checker HealthChecker) {
	h := Health(serviceName, checker)
	for _, p := range HealthPaths {
		r.GET(p, h)
		r.HEAD(p, h)
	}
}
