package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kbukum/gallery/component"
	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/illustration"
	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/observability"
	"github.com/kbukum/gallery/redis"
	"github.com/kbukum/gallery/server"
	"github.com/kbukum/gallery/server/endpoint"
	"github.com/kbukum/gallery/storage"
	"github.com/kbukum/gallery/web"
)

// siteComponent mounts the listing API, the web pages and the operational
// endpoints once storage, redis and the listing backend are running. It must
// be registered after them and before the HTTP server.
type siteComponent struct {
	cfg      *Config
	srv      *server.Server
	registry *component.Registry
	storage  *storage.Component
	redis    *redis.Component
	listing  *illustration.Component
	metrics  *observability.Metrics
	gatherer prometheus.Gatherer
	log      *logger.Logger

	cache   string
	mounted bool
}

var _ component.Component = (*siteComponent)(nil)

func (s *siteComponent) Name() string { return "site" }

func (s *siteComponent) Start(context.Context) error {
	store := s.storage.Storage()
	if store == nil {
		return errors.New("site: storage is not running")
	}
	repo := s.listing.Repository()
	if repo == nil {
		return errors.New("site: listing backend is not running")
	}

	opts := []gallery.Option{gallery.WithLogger(s.log), gallery.WithMetrics(s.metrics)}
	cache := s.urlCache()
	svc := illustration.NewService(repo, s.log)

	engine := s.srv.Engine()
	illustration.NewHandler(svc, s.log, s.metrics).Register(engine, s.cfg.API, s.cfg.Server.CORS)

	site, err := web.NewHandler(web.Deps{
		Lister:   svc,
		Finder:   svc,
		Resolver: gallery.NewResolver(store, cache, s.cfg.Gallery, opts...),
		Detail:   gallery.NewDetailResolver(store, cache, s.cfg.Gallery, opts...),
		Store:    store,
		Gallery:  s.cfg.Gallery,
		Site:     s.cfg.Site,
		Logger:   s.log,
		Metrics:  s.metrics,
	})
	if err != nil {
		return fmt.Errorf("site: %w", err)
	}
	site.Register(engine)

	endpoint.RegisterHealth(engine, s.cfg.Name, s.registry.HealthAll)
	engine.GET("/version", endpoint.Version(s.cfg.Name, time.Now()))
	if s.cfg.Observability.MetricsEnabled {
		engine.GET(s.cfg.Observability.MetricsPath, endpoint.Metrics(s.gatherer))
	}
	s.mounted = true
	return nil
}

// urlCache prefers redis so signed URLs survive restarts and are shared
// between replicas.
func (s *siteComponent) urlCache() gallery.URLCache {
	if client := s.redis.Client(); client != nil {
		s.cache = "redis"
		return gallery.NewRedisCache(client, s.cfg.Gallery.CacheTTL, s.log)
	}
	s.cache = "memory"
	return gallery.NewMemoryCache(s.cfg.Gallery.CacheTTL)
}

func (s *siteComponent) Stop(context.Context) error { return nil }

func (s *siteComponent) Health(context.Context) component.Health {
	if !s.mounted {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "routes not mounted"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

func (s *siteComponent) Describe() component.Description {
	return component.Description{
		Name:    "Site",
		Type:    "routes",
		Details: fmt.Sprintf("listing=%s cache=%s", s.cfg.Listing.Backend, s.cache),
	}
}
