package redis

import (
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Config is the redis section. URL, when set, wins over Addr, Password and
// DB ("redis://:secret@cache:6379/2").
type Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	URL       string `mapstructure:"url"`
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`

	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	MaxRetries   int           `mapstructure:"max_retries"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

func (c *Config) ApplyDefaults() {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "gallery"
	}
	if c.Addr == "" && c.URL == "" {
		c.Addr = "localhost:6379"
	}
	setDefault(&c.PoolSize, 10)
	setDefault(&c.MinIdleConns, 2)
	setDefault(&c.MaxRetries, 3)
	setDefault(&c.DialTimeout, 5*time.Second)
	setDefault(&c.ReadTimeout, 3*time.Second)
	setDefault(&c.WriteTimeout, 3*time.Second)
}

func setDefault[T int | time.Duration](v *T, def T) {
	if *v <= 0 {
		*v = def
	}
}

// Validate is a no-op for a disabled section.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.URL != "" {
		if _, err := goredis.ParseURL(c.URL); err != nil {
			return fmt.Errorf("redis.url: %w", err)
		}
		return nil
	}
	if c.Addr == "" {
		return errors.New("redis.addr is required")
	}
	if c.DB < 0 {
		return errors.New("redis.db must be >= 0")
	}
	return nil
}

// options builds go-redis options. Pool and timeout settings apply on top of
// a parsed URL.
func (c *Config) options() (*goredis.Options, error) {
	opts := &goredis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB}
	if c.URL != "" {
		parsed, err := goredis.ParseURL(c.URL)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}
	opts.PoolSize = c.PoolSize
	opts.MinIdleConns = c.MinIdleConns
	opts.MaxRetries = c.MaxRetries
	opts.DialTimeout = c.DialTimeout
	opts.ReadTimeout = c.ReadTimeout
	opts.WriteTimeout = c.WriteTimeout
	return opts, nil
}
