package gallery

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/observability"
	"github.com/kbukum/gallery/storage"
)

// Resolver turns stored file paths into signed URLs. It never fails: any
// problem yields the placeholder, which is never cached, so the next call
// retries from scratch.
type Resolver struct {
	store storage.Storage
	probe Existence
	cache URLCache
	cfg   Config
	group singleflight.Group
	opts  options
}

// NewResolver creates a resolver. The probe defaults to a Probe over the
// configured folder and a nil cache to a MemoryCache with cfg.CacheTTL.
func NewResolver(store storage.Storage, cache URLCache, cfg Config, opts ...Option) *Resolver {
	cfg.ApplyDefaults()
	if cache == nil {
		cache = NewMemoryCache(cfg.CacheTTL)
	}
	o := resolveOptions("resolver", opts)
	return &Resolver{
		store: store,
		probe: &Probe{store: store, folder: cfg.Folder, opts: o},
		cache: cache,
		cfg:   cfg,
		opts:  o,
	}
}

// Placeholder returns the fallback URL.
func (r *Resolver) Placeholder() string { return r.cfg.Placeholder }

// Normalize strips a leading "<bucket>/" and then a leading "<folder>/".
func (r *Resolver) Normalize(key string) string {
	key = strings.TrimPrefix(key, r.cfg.Bucket+"/")
	return strings.TrimPrefix(key, r.cfg.Folder+"/")
}

// Resolve returns a signed URL for key, or the placeholder. Concurrent calls
// for the same key share one resolution, which runs detached from any one
// caller's cancellation. A caller whose ctx ends first gets the placeholder
// while the others keep waiting.
func (r *Resolver) Resolve(ctx context.Context, key string) string {
	if key == "" {
		r.opts.metrics.ObserveResolution(observability.OutcomeEmptyKey)
		r.opts.log.Debug("empty file path, using placeholder")
		return r.cfg.Placeholder
	}
	if url, ok := r.cache.Get(ctx, key); ok {
		r.opts.metrics.ObserveResolution(observability.OutcomeCacheHit)
		return url
	}

	flight := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		// A flight that finished just before this one may have filled the cache.
		if url, ok := r.cache.Get(flight, key); ok {
			r.opts.metrics.ObserveResolution(observability.OutcomeCacheHit)
			return url, nil
		}
		return r.resolve(flight, key), nil
	})
	select {
	case res := <-ch:
		return res.Val.(string)
	case <-ctx.Done():
		r.opts.log.Debug("resolve abandoned by caller", logger.Fields(logger.FieldKey, key))
		return r.cfg.Placeholder
	}
}

func (r *Resolver) resolve(ctx context.Context, key string) string {
	ctx, span := observability.StartSpan(ctx, observability.SpanResolve)
	span.SetAttributes(attribute.String(observability.AttrStorageKey, key))

	outcome, url, err := r.sign(ctx, key)
	span.SetAttributes(attribute.String(observability.AttrOutcome, outcome))
	observability.EndSpan(span, err)
	r.opts.metrics.ObserveResolution(outcome)

	if outcome != observability.OutcomeSigned {
		return r.cfg.Placeholder
	}
	r.cache.Set(ctx, key, url)
	return url
}

func (r *Resolver) sign(ctx context.Context, key string) (string, string, error) {
	clean := r.Normalize(key)
	if !r.probe.Exists(ctx, clean) {
		r.opts.log.Warn("file does not exist", logger.Fields(logger.FieldKey, key, logger.FieldPath, clean))
		return observability.OutcomeMissing, "", nil
	}

	path := r.cfg.Folder + "/" + clean
	url, err := r.store.SignedURL(ctx, path, r.cfg.SignExpiry)
	if err != nil {
		appErr := storage.Translate("sign", path, err)
		r.opts.log.Error("signed url failed", logger.Fields(logger.FieldPath, path, logger.FieldError, appErr.Error()))
		return observability.OutcomeSignFailure, "", appErr
	}
	if url == "" {
		r.opts.log.Error("no signed url returned", logger.Fields(logger.FieldPath, path))
		return observability.OutcomeSignFailure, "", nil
	}
	return observability.OutcomeSigned, url, nil
}
