package gallery

import (
	"context"
	"strings"

	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/storage"
)

// DetailResolver resolves the image on an illustration's own page. It prefers
// the object's public URL when the object is reachable there, and falls back
// to signing the key with only the bucket stripped. Successful resolutions
// are cached by the original key when a cache is given.
type DetailResolver struct {
	store storage.Storage
	cache URLCache
	cfg   Config
	opts  options
}

// NewDetailResolver creates a detail resolver. cache may be nil.
func NewDetailResolver(store storage.Storage, cache URLCache, cfg Config, opts ...Option) *DetailResolver {
	cfg.ApplyDefaults()
	return &DetailResolver{store: store, cache: cache, cfg: cfg, opts: resolveOptions("detail_resolver", opts)}
}

// Resolve returns a public or signed URL for key, or the placeholder.
func (d *DetailResolver) Resolve(ctx context.Context, key string) string {
	if key == "" {
		return d.cfg.Placeholder
	}
	if d.cache != nil {
		if url, ok := d.cache.Get(ctx, key); ok {
			return url
		}
	}
	url := d.resolve(ctx, key)
	if url != d.cfg.Placeholder && d.cache != nil {
		d.cache.Set(ctx, key, url)
	}
	return url
}

func (d *DetailResolver) resolve(ctx context.Context, key string) string {
	clean := strings.TrimPrefix(key, d.cfg.Bucket+"/")

	if public, err := d.store.URL(ctx, clean); err == nil && public != "" {
		ok, err := d.store.Exists(ctx, clean)
		if err == nil && ok {
			return public
		}
		if err != nil {
			d.opts.log.Debug("public url check failed", logger.Fields(logger.FieldPath, clean, logger.FieldError, err.Error()))
		}
	}

	signed, err := d.store.SignedURL(ctx, clean, d.cfg.SignExpiry)
	if err != nil || signed == "" {
		fields := logger.Fields(logger.FieldPath, clean)
		if err != nil {
			fields[logger.FieldError] = err.Error()
		}
		d.opts.log.Warn("detail image unavailable", fields)
		return d.cfg.Placeholder
	}
	return signed
}
