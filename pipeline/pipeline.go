package pipeline

import "context"

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value, or (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Pipeline is a lazy stream. No work happens until a terminal pulls values.
type Pipeline[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// Runnable is a fully-configured pipeline ready to execute.
type Runnable struct {
	run func(ctx context.Context) error
}

// Run executes the pipeline until the source is exhausted, the sink fails or
// ctx is done.
func (r *Runnable) Run(ctx context.Context) error {
	return r.run(ctx)
}

type result[T any] struct {
	val T
	err error
}

// FromChannel streams values received on ch until it is closed.
func FromChannel[T any](ch <-chan T) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(context.Context) Iterator[T] {
			return &chanIter[T]{ch: ch}
		},
	}
}

// FromSlice streams the items of a slice.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// Filter keeps values for which keep returns true.
func Filter[T any](p *Pipeline[T], keep func(T) bool) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &filterIter[T]{src: p.create(ctx), keep: keep}
		},
	}
}

// Drain pulls every value and hands it to sink.
func Drain[T any](p *Pipeline[T], sink func(context.Context, T) error) *Runnable {
	return &Runnable{
		run: func(ctx context.Context) error {
			it := p.create(ctx)
			defer it.Close()
			for {
				val, ok, err := it.Next(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				if err := sink(ctx, val); err != nil {
					return err
				}
			}
		},
	}
}

// Collect runs the pipeline and returns all values.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	var out []T
	err := Drain(p, func(_ context.Context, v T) error {
		out = append(out, v)
		return nil
	}).Run(ctx)
	return out, err
}

type chanIter[T any] struct {
	ch <-chan T
}

func (it *chanIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	select {
	case v, open := <-it.ch:
		if !open {
			return zero, false, nil
		}
		return v, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (it *chanIter[T]) Close() error { return nil }

type sliceIter[T any] struct {
	items []T
	pos   int
}

func (it *sliceIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if it.pos >= len(it.items) {
		return zero, false, nil
	}
	v := it.items[it.pos]
	it.pos++
	return v, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type filterIter[T any] struct {
	src  Iterator[T]
	keep func(T) bool
}

func (it *filterIter[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		v, ok, err := it.src.Next(ctx)
		if err != nil || !ok {
			return v, ok, err
		}
		if it.keep(v) {
			return v, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.src.Close() }
