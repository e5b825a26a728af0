// Package pipeline provides lazy, pull-based streams with a small set of
// operators. The gallery uses it to turn raw viewport visibility events into
// debounced page-load requests:
//
//	events := pipeline.FromChannel(ch)
//	visible := pipeline.Filter(events, func(e Event) bool { return e.Ratio >= 1 })
//	pipeline.Drain(pipeline.Debounce(visible, 200*time.Millisecond), fire).Run(ctx)
package pipeline
