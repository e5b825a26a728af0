package logger

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// Config is the logging section of a service config.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

var formats = []string{"json", "console", "pretty"}

// ApplyDefaults fills level, format and output. Timestamps are always on.
func (c *Config) ApplyDefaults() {
	c.Level = cmp.Or(c.Level, "info")
	c.Format = cmp.Or(c.Format, "console")
	c.Output = cmp.Or(c.Output, "stdout")
	c.Timestamp = true
}

// Validate accepts any level zerolog can parse.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil || c.Level == "" {
		return fmt.Errorf("logging.level %q is not a known level", c.Level)
	}
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("logging.format must be one of %v (got: %s)", formats, c.Format)
	}
	if c.Output != "stdout" && c.Output != "stderr" {
		return fmt.Errorf("logging.output must be stdout or stderr (got: %s)", c.Output)
	}
	return nil
}
