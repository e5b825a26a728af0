package pipeline

import (
	"context"
	"time"
)

// Debounce emits a value only after the source has been quiet for d. A value
// arriving inside the window replaces the pending one and restarts the timer
// (trailing edge). A pending value is flushed when the source ends.
func Debounce[T any](p *Pipeline[T], d time.Duration) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			src := p.create(ctx)
			pumpCtx, cancel := context.WithCancel(ctx)

			ch := make(chan result[T])
			go func() {
				defer close(ch)
				for {
					v, ok, err := src.Next(pumpCtx)
					if !ok && err == nil {
						return
					}
					select {
					case ch <- result[T]{val: v, err: err}:
					case <-pumpCtx.Done():
						return
					}
					if err != nil {
						return
					}
				}
			}()

			return &debounceIter[T]{ch: ch, d: d, cancel: cancel, closeSrc: src.Close}
		},
	}
}

type debounceIter[T any] struct {
	ch       <-chan result[T]
	d        time.Duration
	cancel   context.CancelFunc
	closeSrc func() error
}

func (it *debounceIter[T]) Next(ctx context.Context) (T, bool, error) {
	var (
		zero    T
		pending T
		has     bool
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case r, open := <-it.ch:
			if !open {
				return pending, has, nil
			}
			if r.err != nil {
				return zero, false, r.err
			}
			pending, has = r.val, true
			if timer == nil {
				timer = time.NewTimer(it.d)
				fire = timer.C
			} else {
				timer.Reset(it.d)
			}
		case <-fire:
			return pending, true, nil
		case <-ctx.Done():
			return zero, false, ctx.Err()
		}
	}
}

func (it *debounceIter[T]) Close() error {
	it.cancel()
	return it.closeSrc()
}
