package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/gallery/bootstrap"
	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/redis"
	"github.com/kbukum/gallery/storage"
)

func newResolveCmd(flags *rootFlags) *cobra.Command {
	var detail bool
	cmd := &cobra.Command{
		Use:   "resolve <key>...",
		Short: "Resolve storage keys to displayable URLs",
		Example: `  gallery resolve illustrations/fox.png uploads/illustrations/owl.png
  gallery resolve --detail uploads/illustrations/owl.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, keys []string) error {
			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			app, err := bootstrap.NewApp(cfg)
			if err != nil {
				return err
			}

			store := storage.NewComponent(cfg.Storage, cfg.providerConfig(), app.Logger)
			cache := redis.NewComponent(cfg.Redis, app.Logger)
			if err := registerAll(app, store, cache); err != nil {
				return err
			}

			var resolver gallery.URLResolver
			app.OnConfigure(func(_ context.Context, a *bootstrap.App[*Config]) error {
				var urls gallery.URLCache = gallery.NewMemoryCache(a.Cfg.Gallery.CacheTTL)
				if client := cache.Client(); client != nil {
					urls = gallery.NewRedisCache(client, a.Cfg.Gallery.CacheTTL, a.Logger)
				}
				opts := []gallery.Option{gallery.WithLogger(a.Logger)}
				if detail {
					resolver = gallery.NewDetailResolver(store.Storage(), urls, a.Cfg.Gallery, opts...)
				} else {
					resolver = gallery.NewResolver(store.Storage(), urls, a.Cfg.Gallery, opts...)
				}
				return nil
			})

			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				for _, key := range keys {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, resolver.Resolve(ctx, key))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&detail, "detail", false, "use the detail page resolution (public URL first)")
	return cmd
}
