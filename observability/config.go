package observability

// Config controls tracing and metrics exposure.
type Config struct {
	// TracingEnabled turns on the OTLP trace exporter.
	TracingEnabled bool `mapstructure:"tracing_enabled"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `mapstructure:"endpoint"`
	// Insecure allows plain HTTP to the collector.
	Insecure bool `mapstructure:"insecure"`
	// SampleRate is the sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
	// MetricsEnabled exposes Prometheus metrics on MetricsPath.
	MetricsEnabled bool `mapstructure:"metrics_enabled"`
	// MetricsPath defaults to /metrics.
	MetricsPath string `mapstructure:"metrics_path"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricsPath == "" {
		c.MetricsPath = "/metrics"
	}
}

// Tracer builds the tracer configuration for a service.
func (c *Config) Tracer(serviceName, serviceVersion, environment string) TracerConfig {
	return TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.SampleRate,
	}
}
