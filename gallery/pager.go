package gallery

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/observability"
)

// FetchErrorFallback is shown when a fetch fails without a usable message.
const FetchErrorFallback = "An error occurred while fetching illustrations"

var errEmptyPage = errors.New(FetchErrorFallback)

// PageState is the pager's view of the listing. Items are in arrival order
// and unique by ID.
type PageState struct {
	CurrentPage int
	HasMore     bool
	Items       []Illustration
	Loading     bool
	Error       string
}

// Phase is the pager's lifecycle position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFetching:
		return "fetching"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Pager fetches listing pages one at a time, in increasing order, and
// accumulates their items. It is the only writer of its PageState.
type Pager struct {
	lister Lister
	cfg    Config
	opts   options

	mu    sync.Mutex
	phase Phase
	state PageState
	seen  map[string]struct{}
	// gen invalidates in-flight fetches across Reset.
	gen uint64
}

// NewPager creates a pager positioned before page 1.
func NewPager(lister Lister, cfg Config, opts ...Option) *Pager {
	cfg.ApplyDefaults()
	p := &Pager{lister: lister, cfg: cfg, opts: resolveOptions("pager", opts)}
	p.reset()
	return p
}

// State returns a snapshot of the current state.
func (p *Pager) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

// Phase returns the current lifecycle phase.
func (p *Pager) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// Reset discards every item and the error, returning to page 1. A fetch in
// flight when Reset is called has its result dropped.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	p.gen++
}

// ResetAt is Reset positioned at page instead of page 1. Pages below 1 are
// treated as 1. Items whose id is in seen were delivered by an earlier
// pager and are skipped when they arrive again.
func (p *Pager) ResetAt(page int, seen ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	p.state.CurrentPage = max(page, 1)
	for _, id := range seen {
		p.seen[id] = struct{}{}
	}
	p.gen++
}

func (p *Pager) reset() {
	p.phase = PhaseIdle
	p.state = PageState{CurrentPage: 1, HasMore: true}
	p.seen = make(map[string]struct{})
}

// FetchNextPage requests the current page. It is a no-op while a fetch is
// running or once the listing is exhausted.
func (p *Pager) FetchNextPage(ctx context.Context) PageState {
	p.mu.Lock()
	if p.phase == PhaseFetching || !p.state.HasMore {
		s := p.snapshot()
		p.mu.Unlock()
		return s
	}
	p.phase = PhaseFetching
	p.state.Loading = true
	page := p.state.CurrentPage
	gen := p.gen
	p.mu.Unlock()

	ctx, span := observability.StartSpan(ctx, observability.SpanFetchPage)
	span.SetAttributes(attribute.Int(observability.AttrPage, page))

	resp, err := p.lister.List(ctx, PageRequest{
		Page:          page,
		Limit:         p.cfg.PageSize,
		SortBy:        p.cfg.SortBy,
		SortDirection: p.cfg.SortDirection,
	})
	if err == nil && resp == nil {
		err = errEmptyPage
	}
	observability.EndSpan(span, err)
	p.opts.metrics.ObservePageFetch(err)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return p.snapshot()
	}
	if err != nil {
		p.fail(page, err)
	} else {
		p.succeed(page, resp)
	}
	p.phase = PhaseIdle
	return p.snapshot()
}

func (p *Pager) succeed(page int, resp *ListingPage) {
	p.phase = PhaseSuccess
	added := 0
	for _, it := range resp.Items {
		if _, dup := p.seen[it.ID]; dup {
			continue
		}
		p.seen[it.ID] = struct{}{}
		p.state.Items = append(p.state.Items, it)
		added++
	}
	p.state.CurrentPage++
	p.state.HasMore = resp.CurrentPage < resp.TotalPages
	p.state.Loading = false
	p.state.Error = ""

	p.opts.log.Debug("page loaded", logger.Fields(
		logger.FieldPage, page,
		"added", added,
		"total_pages", resp.TotalPages,
		"has_more", p.state.HasMore,
	))
}

func (p *Pager) fail(page int, err error) {
	p.phase = PhaseFailure
	msg := err.Error()
	if msg == "" {
		msg = FetchErrorFallback
	}
	p.state.Loading = false
	p.state.Error = msg
	p.opts.log.Error("error fetching illustrations", logger.Fields(logger.FieldPage, page, logger.FieldError, msg))
}

func (p *Pager) snapshot() PageState {
	s := p.state
	s.Items = slices.Clone(p.state.Items)
	return s
}
