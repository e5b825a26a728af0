package redis

import (
	"context"
	"fmt"

	"github.com/kbukum/gallery/component"
	"github.com/kbukum/gallery/logger"
)

// Component runs the shared cache pool. A disabled component starts
// without a client and reports healthy.
type Component struct {
	client *Client
	cfg    Config
	log    *logger.Logger
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates the component; nothing is dialed until Start.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	if log == nil {
		log = logger.NewNop()
	}
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log.WithComponent("redis")}
}

// Client returns the running client, or nil when disabled or stopped.
func (c *Component) Client() *Client {
	return c.client
}

func (c *Component) Name() string { return "redis" }

// Start dials and pings. A failed ping is a start failure.
func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		c.log.Info("redis disabled, using in-process caches")
		return nil
	}
	client, err := New(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("redis start: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis start: %w", err)
	}
	c.client = client
	return nil
}

func (c *Component) Stop(context.Context) error {
	client := c.client
	c.client = nil
	return client.Close()
}

// Health is degraded rather than unhealthy when the server stops answering:
// cache reads then miss and every URL is signed again.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case !c.cfg.Enabled:
		h.Message = "disabled"
	case c.client == nil:
		h.Status, h.Message = component.StatusUnhealthy, "not started"
	default:
		if err := c.client.Ping(ctx); err != nil {
			h.Status, h.Message = component.StatusDegraded, err.Error()
			break
		}
		s := c.client.PoolStats()
		h.Message = fmt.Sprintf("conns=%d idle=%d", s.TotalConns, s.IdleConns)
	}
	return h
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Redis",
		Type:    "cache",
		Details: c.target(),
	}
}

// target names the server without credentials.
func (c *Component) target() string {
	opts, err := c.cfg.options()
	if err != nil {
		return "invalid url"
	}
	return fmt.Sprintf("%s db=%d prefix=%s", opts.Addr, opts.DB, c.cfg.KeyPrefix)
}
