package supabase

import (
	"errors"
	"fmt"
)

// Config holds Supabase-specific configuration.
type Config struct {
	// URL is the Supabase project URL (e.g. https://xyz.supabase.co).
	URL string `mapstructure:"url" json:"url"`

	// SecretKey is the service-role key sent as a Bearer token.
	SecretKey string `mapstructure:"secret_key" json:"-"`

	// Bucket overrides storage.Config.Bucket when set.
	Bucket string `mapstructure:"bucket" json:"bucket"`
}

// Validate checks that the Supabase configuration is valid.
func (c *Config) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("supabase: url is required"))
	}
	if c.Bucket == "" {
		errs = append(errs, errors.New("supabase: bucket is required"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("supabase: secret_key is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("supabase: invalid config: %w", errors.Join(errs...))
	}
	return nil
}
