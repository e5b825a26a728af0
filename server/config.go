package server

import (
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/kbukum/gallery/server/middleware"
)

// Config is the server section. Timeouts accept Go durations ("15s").
type Config struct {
	Host         string                `yaml:"host" mapstructure:"host"`
	Port         int                   `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration         `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration         `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration         `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	CORS         middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	for _, d := range []struct {
		v   *time.Duration
		def time.Duration
	}{
		{&c.ReadTimeout, 15 * time.Second},
		{&c.WriteTimeout, 30 * time.Second},
		{&c.IdleTimeout, 60 * time.Second},
	} {
		if *d.v == 0 {
			*d.v = d.def
		}
	}
	c.CORS.ApplyDefaults()
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, errors.New("server.port must be in 0..65535"))
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must be non-negative"))
	}
	return errors.Join(errs...)
}
