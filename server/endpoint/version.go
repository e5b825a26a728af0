package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/gallery/version"
)

type versionResponse struct {
	Service string `json:"service"`
	version.Info
	Uptime string `json:"uptime"`
}

// Version reports build metadata and how long the process has served since
// started.
func Version(service string, started time.Time) gin.HandlerFunc {
	info := version.Get()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, versionResponse{
			Service: service,
			Info:    info,
			Uptime:  time.Since(started).Truncate(time.Second).String(),
		})
	}
}
