package testutil

import (
	"context"
	"testing"

	"github.com/kbukum/gallery/component"
)

// Start starts each component in order and registers cleanups that stop
// them in reverse order. A start failure fails the test immediately.
func Start(t testing.TB, components ...component.Component) {
	t.Helper()
	StartWithContext(t, context.Background(), components...)
}

// StartWithContext is Start with a caller-provided context.
func StartWithContext(t testing.TB, ctx context.Context, components ...component.Component) {
	t.Helper()
	for _, c := range components {
		if err := c.Start(ctx); err != nil {
			t.Fatalf("failed to start component %s: %v", c.Name(), err)
		}
		t.Cleanup(func() {
			if err := c.Stop(context.Background()); err != nil {
				t.Errorf("failed to stop component %s: %v", c.Name(), err)
			}
		})
	}
}

// RequireHealthy fails the test unless every component reports healthy.
func RequireHealthy(t testing.TB, components ...component.Component) {
	t.Helper()
	for _, c := range components {
		if h := c.Health(context.Background()); h.Status != component.StatusHealthy {
			t.Fatalf("component %s is %s: %s", c.Name(), h.Status, h.Message)
		}
	}
}
