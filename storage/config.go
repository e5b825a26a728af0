package storage

import (
	"errors"
	"fmt"
	"time"
)

// Provider constants for supported storage backends.
const (
	ProviderSupabase = "supabase"
	ProviderS3       = "s3"
	ProviderMinio    = "minio"
	ProviderMemory   = "memory"
)

// Default configuration values.
const (
	DefaultProvider = ProviderSupabase
	DefaultBucket   = "uploads"
	DefaultTimeout  = 30 * time.Second
)

// Config holds provider-independent storage configuration. Provider-specific
// settings live in the supabase, s3 and minio packages.
type Config struct {
	// Provider selects the storage backend: supabase, s3, minio or memory.
	Provider string `mapstructure:"provider" json:"provider"`

	// Bucket is the bucket holding the illustration objects.
	Bucket string `mapstructure:"bucket" json:"bucket"`

	// Timeout bounds each storage request.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`

	// Enabled controls whether the storage component is active.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderSupabase, ProviderS3, ProviderMinio, ProviderMemory:
	default:
		errs = append(errs, fmt.Errorf("storage: unsupported provider %q", c.Provider))
	}
	if c.Bucket == "" {
		errs = append(errs, errors.New("storage: bucket is required"))
	}
	return errors.Join(errs...)
}
