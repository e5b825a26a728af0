package illustration

import (
	"errors"
	"fmt"
	"time"
)

const (
	BackendPostgres = "postgres"
	BackendREST     = "rest"

	DefaultTable = "image_uploads"
)

// Config selects and configures the listing backend.
type Config struct {
	// Backend is "postgres" or "rest".
	Backend  string         `yaml:"backend" mapstructure:"backend"`
	Table    string         `yaml:"table" mapstructure:"table"`
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
	REST     RESTConfig     `yaml:"rest" mapstructure:"rest"`
}

// PostgresConfig configures the pgx pool.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn" mapstructure:"dsn"`
	MaxConns        int32         `yaml:"max_conns" mapstructure:"max_conns"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" mapstructure:"max_conn_idle_time"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`
}

// RESTConfig points at a PostgREST deployment, usually "<project>/rest/v1".
type RESTConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Key     string        `yaml:"key" mapstructure:"key"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendREST
	}
	if c.Table == "" {
		c.Table = DefaultTable
	}
	if c.Postgres.MaxConns <= 0 {
		c.Postgres.MaxConns = 10
	}
	if c.Postgres.MaxConnIdleTime <= 0 {
		c.Postgres.MaxConnIdleTime = 5 * time.Minute
	}
	if c.Postgres.ConnectTimeout <= 0 {
		c.Postgres.ConnectTimeout = 5 * time.Second
	}
	if c.REST.Timeout <= 0 {
		c.REST.Timeout = 15 * time.Second
	}
}

// Validate checks that the selected backend is fully configured.
func (c *Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("listing.postgres.dsn is required for the postgres backend"))
		}
	case BackendREST:
		if c.REST.URL == "" {
			errs = append(errs, errors.New("listing.rest.url is required for the rest backend"))
		}
		if c.REST.Key == "" {
			errs = append(errs, errors.New("listing.rest.key is required for the rest backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("listing.backend must be %q or %q (got: %q)", BackendPostgres, BackendREST, c.Backend))
	}
	if c.Table == "" {
		errs = append(errs, errors.New("listing.table is required"))
	}
	return errors.Join(errs...)
}
