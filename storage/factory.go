package storage

import (
	"fmt"

	"github.com/kbukum/gallery/logger"
)

// Factory creates a Storage implementation from core config and
// provider-specific configuration. Each provider type-asserts providerCfg
// to its own config type.
type Factory func(cfg Config, providerCfg any, log *logger.Logger) (Storage, error)

var factories = make(map[string]Factory)

// RegisterFactory registers a storage backend factory for the given provider
// name. Backend packages call this from init.
func RegisterFactory(name string, f Factory) {
	factories[name] = f
}

// New creates a Storage implementation based on the given Config. The desired
// backend package must be imported (e.g. _ "github.com/kbukum/gallery/storage/s3")
// so its factory is registered.
func New(cfg Config, providerCfg any, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	l := log.WithComponent("storage")

	f, ok := factories[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("storage: unsupported provider %q (not registered)", cfg.Provider)
	}

	l.Info("initializing storage", logger.Fields("provider", cfg.Provider, logger.FieldBucket, cfg.Bucket))
	return f(cfg, providerCfg, l)
}
