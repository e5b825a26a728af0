package gallery

import (
	"errors"
	"fmt"
	"time"

	"github.com/kbukum/gallery/validation"
)

const (
	DefaultPlaceholder   = "/assets/svgs/placeholder.svg"
	DefaultBucket        = "uploads"
	DefaultFolder        = "illustrations"
	DefaultSignExpiry    = time.Hour
	DefaultCacheTTL      = 55 * time.Minute
	DefaultPageSize      = 9
	DefaultSortBy        = "created_at"
	DefaultSortDirection = "desc"
	DefaultDebounce      = 200 * time.Millisecond
	DefaultSkeletons     = 9
)

// Config tunes the browsing core.
type Config struct {
	// Placeholder is returned whenever a key cannot be resolved.
	Placeholder string `yaml:"placeholder" mapstructure:"placeholder" validate:"required"`
	// Bucket is stripped from the front of stored keys.
	Bucket string `yaml:"bucket" mapstructure:"bucket" validate:"required"`
	// Folder holds the illustration objects inside the bucket.
	Folder     string        `yaml:"folder" mapstructure:"folder" validate:"required"`
	SignExpiry time.Duration `yaml:"sign_expiry" mapstructure:"sign_expiry" validate:"gt=0"`
	// CacheTTL bounds how long a signed URL is reused. Keep it below SignExpiry.
	CacheTTL      time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl" validate:"gt=0"`
	PageSize      int           `yaml:"page_size" mapstructure:"page_size" validate:"gte=1,lte=100"`
	SortBy        string        `yaml:"sort_by" mapstructure:"sort_by" validate:"oneof=created_at title id"`
	SortDirection string        `yaml:"sort_direction" mapstructure:"sort_direction" validate:"oneof=asc desc"`
	Debounce      time.Duration `yaml:"debounce" mapstructure:"debounce" validate:"gte=0"`
	Skeletons     int           `yaml:"skeletons" mapstructure:"skeletons" validate:"gte=0"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	if c.Folder == "" {
		c.Folder = DefaultFolder
	}
	if c.SignExpiry == 0 {
		c.SignExpiry = DefaultSignExpiry
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.SortBy == "" {
		c.SortBy = DefaultSortBy
	}
	if c.SortDirection == "" {
		c.SortDirection = DefaultSortDirection
	}
	if c.Debounce == 0 {
		c.Debounce = DefaultDebounce
	}
	if c.Skeletons == 0 {
		c.Skeletons = DefaultSkeletons
	}
}

// Validate checks tag constraints and that cached URLs expire before the
// signatures they hold.
func (c *Config) Validate() error {
	var errs []error
	if err := validation.Validate(c); err != nil {
		errs = append(errs, err)
	}
	if c.CacheTTL > c.SignExpiry {
		errs = append(errs, fmt.Errorf("gallery.cache_ttl (%s) must not exceed gallery.sign_expiry (%s)", c.CacheTTL, c.SignExpiry))
	}
	return errors.Join(errs...)
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var c Config
	c.ApplyDefaults()
	return c
}
