package bootstrap

import (
	"time"

	"github.com/kbukum/gallery/logger"
)

// DefaultShutdownTimeout bounds component shutdown when no option sets it.
const DefaultShutdownTimeout = 15 * time.Second

// Option adjusts NewApp.
type Option func(*settings)

type settings struct {
	log      *logger.Logger
	shutdown time.Duration
}

func newSettings(opts []Option) settings {
	s := settings{shutdown: DefaultShutdownTimeout}
	for _, opt := range opts {
		opt(&s)
	}
	if s.shutdown <= 0 {
		s.shutdown = DefaultShutdownTimeout
	}
	return s
}

// WithLogger replaces the logger built from the Logging config section.
// Tests pass logger.NewNop here.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithGracefulTimeout bounds how long Shutdown waits for components to stop.
// Non-positive values keep the default.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) { s.shutdown = d }
}
