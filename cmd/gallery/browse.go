package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/gallery/bootstrap"
	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/httpclient"
	"github.com/kbukum/gallery/illustration"
	"github.com/kbukum/gallery/server/middleware"
	"github.com/kbukum/gallery/storage"
)

func newBrowseCmd(flags *rootFlags) *cobra.Command {
	var (
		pages   int
		resolve bool
	)
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Scroll through a running gallery from the terminal",
		Long: `Browse reads the listing API at remote.url page by page, the way the
gallery page does while it is scrolled, and prints every card as it loads.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			app, err := bootstrap.NewApp(cfg)
			if err != nil {
				return err
			}

			var store *storage.Component
			if resolve {
				store = storage.NewComponent(cfg.Storage, cfg.providerConfig(), app.Logger)
				if err := app.RegisterComponent(store); err != nil {
					return err
				}
			}

			client, err := illustration.NewClient(cfg.Remote.URL,
				middleware.APIKeyConfig{Header: cfg.API.Header, Key: cfg.Remote.Key},
				httpclient.Config{Timeout: cfg.Remote.Timeout})
			if err != nil {
				return err
			}

			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				var resolver gallery.URLResolver = placeholderResolver(cfg.Gallery.Placeholder)
				if store != nil {
					resolver = gallery.NewResolver(store.Storage(), gallery.NewMemoryCache(cfg.Gallery.CacheTTL), cfg.Gallery,
						gallery.WithLogger(app.Logger))
				}
				b := &browser{
					out:  cmd.OutOrStdout(),
					view: gallery.NewView(client, resolver, cfg.Gallery, gallery.WithLogger(app.Logger)),
					cfg:  cfg.Gallery,
					opts: []gallery.Option{gallery.WithLogger(app.Logger)},
				}
				return b.run(ctx, pages)
			})
		},
	}
	cmd.Flags().IntVarP(&pages, "pages", "n", 0, "stop after this many pages (0 loads everything)")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "resolve image URLs against storage")
	return cmd
}

type placeholderResolver string

func (p placeholderResolver) Resolve(context.Context, string) string { return string(p) }

// browser drives a View the way a scrolling page does: the first page is
// loaded eagerly, later ones only when the sentinel is reported visible.
type browser struct {
	out  io.Writer
	view *gallery.View
	cfg  gallery.Config
	opts []gallery.Option
}

func (b *browser) run(ctx context.Context, maxPages int) error {
	model := b.view.Load(ctx)
	if model.State == gallery.ViewError {
		return errors.New(model.Error)
	}
	b.print(1, model.Cards)
	shown := len(model.Cards)

	trigger := gallery.NewTrigger(b.view.Pager(), b.cfg, b.opts...)
	fetched := make(chan gallery.PageState, 1)
	trigger.OnFetch(func(st gallery.PageState) { fetched <- st })
	if err := trigger.Start(ctx); err != nil {
		return err
	}
	defer trigger.Stop()

	for page := 2; trigger.Watching() && (maxPages == 0 || page <= maxPages); page++ {
		trigger.Observe(gallery.VisibleRatio)

		var st gallery.PageState
		select {
		case st = <-fetched:
		case <-ctx.Done():
			return ctx.Err()
		}
		if st.Error != "" {
			return errors.New(st.Error)
		}
		b.print(page, b.view.Cards(ctx, st.Items[shown:]))
		shown = len(st.Items)
	}

	final := b.view.Render(ctx)
	if final.Message != "" {
		fmt.Fprintln(b.out, final.Message)
	}
	return nil
}

func (b *browser) print(page int, cards []gallery.Card) {
	fmt.Fprintf(b.out, "page %d\n", page)
	for _, c := range cards {
		fmt.Fprintf(b.out, "  %-24s %s\n    %s\n", c.ID, c.Title, c.ImageURL)
	}
}
