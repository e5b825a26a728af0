package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/kbukum/gallery/config"
	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/illustration"
	"github.com/kbukum/gallery/observability"
	"github.com/kbukum/gallery/redis"
	"github.com/kbukum/gallery/server"
	"github.com/kbukum/gallery/server/middleware"
	"github.com/kbukum/gallery/storage"
	"github.com/kbukum/gallery/storage/minio"
	"github.com/kbukum/gallery/storage/s3"
	"github.com/kbukum/gallery/storage/supabase"
	"github.com/kbukum/gallery/web"
)

const serviceName = "gallery"

// Config is the full gallery configuration. Every section can be overridden
// from the environment with "_" joined keys (SERVER_PORT, API_KEY, ...).
type Config struct {
	config.ServiceConfig `mapstructure:",squash"`

	Server        server.Config           `mapstructure:"server"`
	API           middleware.APIKeyConfig `mapstructure:"api"`
	Storage       storage.Config          `mapstructure:"storage"`
	Supabase      supabase.Config         `mapstructure:"supabase"`
	S3            s3.Config               `mapstructure:"s3"`
	Minio         minio.Config            `mapstructure:"minio"`
	Redis         redis.Config            `mapstructure:"redis"`
	Listing       illustration.Config     `mapstructure:"listing"`
	Gallery       gallery.Config          `mapstructure:"gallery"`
	Site          web.Site                `mapstructure:"site"`
	Observability observability.Config    `mapstructure:"observability"`
	Remote        RemoteConfig            `mapstructure:"remote"`
}

// RemoteConfig points the browse command at a running listing API.
type RemoteConfig struct {
	URL     string        `mapstructure:"url"`
	Key     string        `mapstructure:"key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ApplyDefaults fills every section. Storage is always enabled: nothing in the
// gallery works without it.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Storage.Enabled = true
	c.S3.ApplyDefaults()
	c.Minio.ApplyDefaults()
	c.Redis.ApplyDefaults()
	c.Listing.ApplyDefaults()
	c.Gallery.ApplyDefaults()
	c.Site.ApplyDefaults()
	c.Observability.ApplyDefaults()
	if c.API.Header == "" {
		c.API.Header = middleware.DefaultAPIKeyHeader
	}
	if c.Remote.URL == "" {
		c.Remote.URL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Remote.Key == "" {
		c.Remote.Key = c.API.Key
	}
	if c.Remote.Timeout <= 0 {
		c.Remote.Timeout = 15 * time.Second
	}
}

// Validate checks the sections every command uses. The listing backend is
// checked by serve only.
func (c *Config) Validate() error {
	return errors.Join(
		c.ServiceConfig.Validate(),
		c.Server.Validate(),
		c.Storage.Validate(),
		c.Redis.Validate(),
		c.Gallery.Validate(),
		c.Site.Validate(),
	)
}

// providerConfig returns the provider section matching storage.provider.
func (c *Config) providerConfig() any {
	switch c.Storage.Provider {
	case storage.ProviderSupabase:
		return &c.Supabase
	case storage.ProviderS3:
		return &c.S3
	case storage.ProviderMinio:
		return &c.Minio
	}
	return nil
}

func loadConfig(file string) (*Config, error) {
	var opts []config.LoaderOption
	if file != "" {
		opts = append(opts, config.WithConfigFile(file))
	}
	cfg := &Config{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
