// Package gallery holds the browsing core: resolving storage keys to signed
// image URLs, probing for object existence, paging through the listing
// feed, debouncing sentinel visibility into page fetches, and composing all
// of it into a render model.
//
// Every piece is constructed explicitly and shares no package state:
//
//	cache := gallery.NewMemoryCache(cfg.CacheTTL)
//	resolver := gallery.NewResolver(store, cache, cfg, gallery.WithLogger(log))
//	view := gallery.NewView(lister, resolver, cfg)
//	model := view.Load(ctx)
package gallery
