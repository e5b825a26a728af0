package gallery

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/observability"
	"github.com/kbukum/gallery/storage"
)

// Existence reports whether an object is present in storage.
type Existence interface {
	Exists(ctx context.Context, path string) bool
}

// Probe checks object existence by searching the illustrations folder. It
// never caches and never returns an error: any failure reads as absent.
type Probe struct {
	store  storage.Storage
	folder string
	opts   options
}

// NewProbe creates a probe over folder.
func NewProbe(store storage.Storage, folder string, opts ...Option) *Probe {
	return &Probe{store: store, folder: folder, opts: resolveOptions("probe", opts)}
}

// Exists lists buckets first to confirm storage is reachable, then searches
// folder for path with a single-entry page.
func (p *Probe) Exists(ctx context.Context, path string) bool {
	ctx, span := observability.StartSpan(ctx, observability.SpanProbe)
	span.SetAttributes(attribute.String(observability.AttrStorageKey, path))

	found, err := p.exists(ctx, path)
	p.opts.metrics.ObserveProbe(found, err)
	observability.EndSpan(span, err)
	if err != nil {
		p.opts.log.Warn("existence probe failed", logger.Fields(logger.FieldPath, path, logger.FieldError, err.Error()))
		return false
	}
	if !found {
		p.opts.log.Debug("object not found", logger.Fields(logger.FieldPath, path))
	}
	return found
}

func (p *Probe) exists(ctx context.Context, path string) (bool, error) {
	if _, err := p.store.ListBuckets(ctx); err != nil {
		return false, storage.Translate("list_buckets", "", err)
	}
	files, err := p.store.List(ctx, p.folder, storage.ListOptions{Search: path, Limit: 1, Offset: 0})
	if err != nil {
		return false, storage.Translate("list", p.folder, err)
	}
	return len(files) > 0, nil
}
