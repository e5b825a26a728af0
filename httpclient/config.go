package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/gallery/resilience"
)

const defaultTimeout = 30 * time.Second

// Config configures the HTTP client.
type Config struct {
	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds each request, including reading the body. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Headers are sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	// Auth is applied to every request unless the request overrides it.
	Auth Auth `yaml:"-" mapstructure:"-"`
	// Retry enables retries. Nil disables them.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`
	// CircuitBreaker enables circuit breaking. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return nil
}

// DefaultRetryConfig retries only errors classified as retryable.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}

// DefaultCircuitBreakerConfig returns the resilience defaults under name.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	return &cfg
}
