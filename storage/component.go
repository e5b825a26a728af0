package storage

import (
	"context"
	"fmt"

	"github.com/kbukum/gallery/component"
	"github.com/kbukum/gallery/logger"
)

// Component wraps Storage and implements component.Component for lifecycle management.
type Component struct {
	storage     Storage
	cfg         Config
	providerCfg any
	log         *logger.Logger
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a storage component for use with the component registry.
func NewComponent(cfg Config, providerCfg any, log *logger.Logger) *Component {
	if log == nil {
		log = logger.NewNop()
	}
	cfg.ApplyDefaults()
	return &Component{
		cfg:         cfg,
		providerCfg: providerCfg,
		log:         log.WithComponent("storage"),
	}
}

// Storage returns the underlying Storage, or nil if not started.
func (c *Component) Storage() Storage {
	return c.storage
}

// Name returns the component name.
func (c *Component) Name() string { return "storage" }

// Start initializes the storage backend.
func (c *Component) Start(_ context.Context) error {
	if !c.cfg.Enabled {
		c.log.Info("storage component is disabled")
		return nil
	}

	s, err := New(c.cfg, c.providerCfg, c.log)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	c.storage = s
	return nil
}

// Stop releases the backend.
func (c *Component) Stop(_ context.Context) error {
	c.storage = nil
	return nil
}

// Health lists buckets as a liveness probe.
func (c *Component) Health(ctx context.Context) component.Health {
	if !c.cfg.Enabled {
		return component.Health{Name: c.Name(), Status: component.StatusHealthy, Message: "disabled"}
	}
	if c.storage == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "storage not initialized"}
	}
	if _, err := c.storage.ListBuckets(ctx); err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusDegraded,
			Message: fmt.Sprintf("list buckets failed: %v", err),
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns infrastructure summary info for the startup log.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Storage",
		Type:    "storage",
		Details: fmt.Sprintf("provider=%s bucket=%s", c.cfg.Provider, c.cfg.Bucket),
	}
}
