package gallery

import (
	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/observability"
)

// Option configures the ambient dependencies of a gallery type.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *observability.Metrics
}

func resolveOptions(component string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.NewNop()
	}
	o.log = o.log.WithComponent(component)
	return o
}

// WithLogger sets the logger. Each type scopes it to its own component name.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records outcomes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}
