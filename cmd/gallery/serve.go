package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/kbukum/gallery/bootstrap"
	"github.com/kbukum/gallery/component"
	"github.com/kbukum/gallery/illustration"
	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/observability"
	"github.com/kbukum/gallery/redis"
	"github.com/kbukum/gallery/server"
	"github.com/kbukum/gallery/storage"
	_ "github.com/kbukum/gallery/storage/memory"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery and the listing API",
		Example: `  # Serve with ./config.yml and .env
  gallery serve

  # Override the port
  gallery serve --port 3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			app, _, err := newServeApp(cfg)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides server.port)")
	return cmd
}

// newServeApp registers, in dependency order, storage, redis, the listing
// backend, the site routes and finally the HTTP server.
func newServeApp(cfg *Config, opts ...bootstrap.Option) (*bootstrap.App[*Config], *server.Server, error) {
	cfg.Listing.ApplyDefaults()
	if err := cfg.Listing.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation: %w", err)
	}
	app, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyMiddleware(metrics)

	store := storage.NewComponent(cfg.Storage, cfg.providerConfig(), app.Logger)
	cache := redis.NewComponent(cfg.Redis, app.Logger)
	listing := illustration.NewComponent(cfg.Listing, app.Logger)
	site := &siteComponent{
		cfg:      cfg,
		srv:      srv,
		registry: app.Components,
		storage:  store,
		redis:    cache,
		listing:  listing,
		metrics:  metrics,
		gatherer: reg,
		log:      app.Logger,
	}
	if err := registerAll(app, store, cache, listing, site, server.NewComponent(srv)); err != nil {
		return nil, nil, err
	}

	if cfg.Observability.TracingEnabled {
		app.OnStart(func(ctx context.Context) error {
			tp, err := observability.InitTracer(ctx, cfg.Observability.Tracer(cfg.Name, cfg.Version, cfg.Environment))
			if err != nil {
				return err
			}
			app.OnStop(tp.Shutdown)
			return nil
		})
	}
	app.OnReady(func(context.Context) error {
		app.Logger.Info("gallery listening", logger.Fields("addr", srv.Addr(), "site", cfg.Site.URL))
		return nil
	})
	return app, srv, nil
}

func registerAll(app *bootstrap.App[*Config], cs ...component.Component) error {
	for _, c := range cs {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}
	return nil
}
