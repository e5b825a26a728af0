package gallery

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/pipeline"
)

// VisibleRatio is the intersection ratio at which the sentinel counts as seen.
const VisibleRatio = 1.0

// ErrTriggerStarted is returned by Start on a trigger that was already started.
var ErrTriggerStarted = errors.New("gallery: trigger already started")

// Trigger turns sentinel visibility events into page fetches. Fully visible
// events are debounced on the trailing edge; when the debounce fires the
// pager is asked for the next page only if it is idle and has more.
type Trigger struct {
	pager    *Pager
	debounce time.Duration
	opts     options
	onFetch  func(PageState)

	events  chan float64
	live    atomic.Bool
	started atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
	stop    sync.Once
}

// NewTrigger creates an idle trigger for pager.
func NewTrigger(pager *Pager, cfg Config, opts ...Option) *Trigger {
	cfg.ApplyDefaults()
	return &Trigger{
		pager:    pager,
		debounce: cfg.Debounce,
		opts:     resolveOptions("trigger", opts),
		events:   make(chan float64, 16),
		done:     make(chan struct{}),
	}
}

// OnFetch registers fn to receive the state after each fetch the trigger
// issues. Call before Start.
func (t *Trigger) OnFetch(fn func(PageState)) {
	t.onFetch = fn
}

// Start begins watching. The trigger stops when ctx is done or Stop is called.
func (t *Trigger) Start(ctx context.Context) error {
	if !t.started.CompareAndSwap(false, true) {
		return ErrTriggerStarted
	}
	ctx, t.cancel = context.WithCancel(ctx)
	t.live.Store(true)

	visible := pipeline.Filter(pipeline.FromChannel(t.events), func(ratio float64) bool {
		return ratio >= VisibleRatio
	})
	run := pipeline.Drain(pipeline.Debounce(visible, t.debounce), t.fire)

	go func() {
		defer close(t.done)
		defer t.live.Store(false)
		if err := run.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			t.opts.log.Warn("trigger stopped", logger.Fields(logger.FieldError, err.Error()))
		}
	}()
	return nil
}

// Observe reports the sentinel's current intersection ratio. It is ignored
// once the trigger is torn down.
func (t *Trigger) Observe(ratio float64) {
	if !t.live.Load() {
		return
	}
	select {
	case t.events <- ratio:
	case <-t.done:
	}
}

// Watching reports whether the trigger is live and the pager still has
// pages to load.
func (t *Trigger) Watching() bool {
	return t.live.Load() && t.pager.State().HasMore
}

// Stop tears the trigger down and waits for it to exit. A debounced fire
// still pending is dropped. Start and Stop must not race each other.
func (t *Trigger) Stop() {
	t.stop.Do(func() {
		t.live.Store(false)
		if t.started.CompareAndSwap(false, true) {
			close(t.done)
			return
		}
		t.cancel()
		<-t.done
	})
}

func (t *Trigger) fire(ctx context.Context, _ float64) error {
	if !t.live.Load() {
		return nil
	}
	st := t.pager.State()
	if st.Loading || !st.HasMore {
		t.opts.log.Debug("trigger fired while busy or exhausted", logger.Fields("loading", st.Loading, "has_more", st.HasMore))
		return nil
	}
	st = t.pager.FetchNextPage(ctx)
	if t.onFetch != nil {
		t.onFetch(st)
	}
	return nil
}
