package gallery

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const (
	ExhaustedMessage = "No more illustrations to load."
	EmptyMessage     = "No illustrations found."
)

// maxConcurrentResolves bounds the resolver fan-out of one render.
const maxConcurrentResolves = 8

// URLResolver maps a storage key to a displayable URL.
type URLResolver interface {
	Resolve(ctx context.Context, key string) string
}

// ViewState selects which of the three gallery layouts to render.
type ViewState int

const (
	ViewNormal ViewState = iota
	ViewError
	ViewExhausted
)

func (s ViewState) String() string {
	switch s {
	case ViewNormal:
		return "normal"
	case ViewError:
		return "error"
	case ViewExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Card is one grid entry.
type Card struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	Href        string
}

// Model is everything needed to draw the gallery once.
type Model struct {
	State ViewState
	// Error is set in the error state.
	Error string
	Cards []Card
	// Skeletons is the number of placeholder cards to draw while the first
	// batch loads.
	Skeletons int
	// Sentinel marks where the next page's trigger sits. Present while more
	// pages remain.
	Sentinel bool
	NextPage int
	// Message is set in the exhausted state.
	Message string
}

// View composes a pager, a trigger target and a resolver into render models.
type View struct {
	pager    *Pager
	resolver URLResolver
	cfg      Config
	opts     options
}

// NewView creates a view with a fresh pager over lister.
func NewView(lister Lister, resolver URLResolver, cfg Config, opts ...Option) *View {
	cfg.ApplyDefaults()
	return &View{
		pager:    NewPager(lister, cfg, opts...),
		resolver: resolver,
		cfg:      cfg,
		opts:     resolveOptions("view", opts),
	}
}

// Pager exposes the view's pager so a Trigger can drive it.
func (v *View) Pager() *Pager { return v.pager }

// Load performs the initial fetch if nothing has been fetched yet and renders.
func (v *View) Load(ctx context.Context) Model {
	st := v.pager.State()
	if len(st.Items) == 0 && st.HasMore && st.Error == "" && !st.Loading {
		v.pager.FetchNextPage(ctx)
	}
	return v.Render(ctx)
}

// LoadMore fetches the next page and renders.
func (v *View) LoadMore(ctx context.Context) Model {
	v.pager.FetchNextPage(ctx)
	return v.Render(ctx)
}

// LoadPage starts over at page and renders only that page's batch, minus
// any item whose id is in seen.
func (v *View) LoadPage(ctx context.Context, page int, seen ...string) Model {
	v.pager.ResetAt(page, seen...)
	v.pager.FetchNextPage(ctx)
	return v.Render(ctx)
}

// Retry is the error state's recovery action: a full reset followed by the
// initial load.
func (v *View) Retry(ctx context.Context) Model {
	v.opts.log.Debug("gallery reset after error")
	v.pager.Reset()
	return v.Load(ctx)
}

// Render builds the model for the pager's current state, resolving every
// card's image URL.
func (v *View) Render(ctx context.Context) Model {
	st := v.pager.State()
	if st.Error != "" {
		return Model{State: ViewError, Error: st.Error}
	}

	m := Model{
		Cards:    v.Cards(ctx, st.Items),
		Sentinel: st.HasMore,
		NextPage: st.CurrentPage,
	}
	if st.Loading && len(st.Items) == 0 {
		m.Skeletons = v.cfg.Skeletons
	}
	if !st.HasMore {
		m.State = ViewExhausted
		m.Message = EmptyMessage
		if len(st.Items) > 0 {
			m.Message = ExhaustedMessage
		}
	}
	return m
}

// Cards resolves items into cards, preserving order. Each card shows the
// placeholder until its resolution completes.
func (v *View) Cards(ctx context.Context, items []Illustration) []Card {
	cards := make([]Card, len(items))
	placeholder := v.cfg.Placeholder

	var g errgroup.Group
	g.SetLimit(maxConcurrentResolves)
	for i, it := range items {
		cards[i] = Card{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			ImageURL:    placeholder,
			Href:        "/illustrations/" + it.ID,
		}
		if it.FilePath == "" {
			continue
		}
		g.Go(func() error {
			cards[i].ImageURL = v.resolver.Resolve(ctx, it.FilePath)
			return nil
		})
	}
	_ = g.Wait()
	return cards
}
