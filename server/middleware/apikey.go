package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultAPIKeyHeader is the header checked when none is configured.
const DefaultAPIKeyHeader = "X-API-Key"

// APIKeyConfig configures the shared-secret check.
type APIKeyConfig struct {
	Header string `mapstructure:"header"`
	Key    string `mapstructure:"key"`
}

// APIKey rejects requests whose header does not equal the configured key with
// 401 {"message":"Unauthorized"}. An empty configured key rejects everything.
func APIKey(cfg APIKeyConfig) gin.HandlerFunc {
	header := cfg.Header
	if header == "" {
		header = DefaultAPIKeyHeader
	}
	want := []byte(cfg.Key)

	return func(c *gin.Context) {
		got := []byte(c.GetHeader(header))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Next()
	}
}
