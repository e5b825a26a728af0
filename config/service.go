package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kbukum/gallery/logger"
)

// Environments accepted in ServiceConfig.Environment.
var Environments = []string{"development", "staging", "production"}

// ServiceConfig is embedded, squashed, by every command's config.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// IsProduction reports whether the service runs in production.
func (c *ServiceConfig) IsProduction() bool { return c.Environment == "production" }

// ApplyDefaults picks logging defaults from the environment: debug console
// output in development, JSON everywhere else. Explicit settings win.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Logging.Format == "" && c.Environment != "development" {
		c.Logging.Format = "json"
	}
	if c.Logging.Level == "" && c.Environment == "development" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

func (c *ServiceConfig) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("config.name is required"))
	}
	if !slices.Contains(Environments, c.Environment) {
		errs = append(errs, fmt.Errorf("config.environment must be one of %v (got: %s)", Environments, c.Environment))
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("config.logging: %w", err))
	}
	return errors.Join(errs...)
}
