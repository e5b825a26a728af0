package illustration

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/observability"
)

var _ gallery.Lister = (*Service)(nil)

// Service turns repository rows into listing pages. It also serves the
// in-process gallery view as a gallery.Lister.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a service over repo.
func NewService(repo Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{repo: repo, log: log.WithComponent("illustration.service")}
}

// Page runs q and assembles the response envelope.
func (s *Service) Page(ctx context.Context, q Query) (*gallery.ListingPage, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanListingQuery)
	span.SetAttributes(attribute.Int(observability.AttrPage, q.Page))

	items, count, err := s.repo.List(ctx, q)
	observability.EndSpan(span, err)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []gallery.Illustration{}
	}
	return &gallery.ListingPage{
		Items:       items,
		TotalCount:  count,
		CurrentPage: q.Page,
		TotalPages:  TotalPages(count, q.Limit),
	}, nil
}

// List implements gallery.Lister.
func (s *Service) List(ctx context.Context, req gallery.PageRequest) (*gallery.ListingPage, error) {
	q, err := FromPageRequest(req)
	if err != nil {
		return nil, err
	}
	return s.Page(ctx, q)
}

// Get returns one illustration.
func (s *Service) Get(ctx context.Context, id string) (*gallery.Illustration, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanItemQuery)
	span.SetAttributes(attribute.String(observability.AttrIllustrationID, id))

	it, err := s.repo.Get(ctx, id)
	observability.EndSpan(span, err)
	return it, err
}
