package illustration

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kbukum/gallery/component"
	"github.com/kbukum/gallery/logger"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Component owns the listing backend's connection.
type Component struct {
	cfg  Config
	log  *logger.Logger
	pool *pgxpool.Pool
	repo Repository
}

// NewComponent creates the listing component.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	if log == nil {
		log = logger.NewNop()
	}
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log.WithComponent("listing")}
}

// Repository returns the repository, or nil before Start.
func (c *Component) Repository() Repository { return c.repo }

func (c *Component) Name() string { return "listing" }

// Start connects the configured backend.
func (c *Component) Start(ctx context.Context) error {
	switch c.cfg.Backend {
	case BackendPostgres:
		pool, err := c.connect(ctx)
		if err != nil {
			return err
		}
		c.pool = pool
		c.repo = NewPostgresRepository(pool, c.cfg.Table, c.log)
	case BackendREST:
		repo, err := NewRESTRepository(c.cfg.REST, c.cfg.Table, c.log)
		if err != nil {
			return err
		}
		c.repo = repo
	default:
		return fmt.Errorf("listing: unsupported backend %q", c.cfg.Backend)
	}
	return nil
}

func (c *Component) connect(ctx context.Context) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(c.cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("listing: parse postgres dsn: %w", err)
	}
	poolCfg.MaxConns = c.cfg.Postgres.MaxConns
	poolCfg.MaxConnIdleTime = c.cfg.Postgres.MaxConnIdleTime

	connectCtx, cancel := context.WithTimeout(ctx, c.cfg.Postgres.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("listing: create pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("listing: ping postgres: %w", err)
	}
	c.log.Info("Postgres pool ready", logger.Fields("max_conns", poolCfg.MaxConns))
	return pool, nil
}

// Stop closes the pool.
func (c *Component) Stop(_ context.Context) error {
	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
	c.repo = nil
	return nil
}

// Health pings the backend.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.repo == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	if p, ok := c.repo.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return component.Health{Name: c.Name(), Status: component.StatusDegraded, Message: err.Error()}
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Listing",
		Type:    "repository",
		Details: fmt.Sprintf("backend=%s table=%s", c.cfg.Backend, c.cfg.Table),
	}
}
