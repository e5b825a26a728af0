package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/gallery/component"
)

type recorder struct {
	name   string
	events *[]string
	err    error
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Start(context.Context) error {
	if r.err != nil {
		return r.err
	}
	*r.events = append(*r.events, "start "+r.name)
	return nil
}

func (r *recorder) Stop(context.Context) error {
	*r.events = append(*r.events, "stop "+r.name)
	return nil
}

func (r *recorder) Health(context.Context) component.Health {
	return component.Health{Name: r.name, Status: component.StatusHealthy}
}

func TestStartStopsInReverse(t *testing.T) {
	var events []string
	t.Run("inner", func(t *testing.T) {
		a := &recorder{name: "a", events: &events}
		b := &recorder{name: "b", events: &events}
		Start(t, a, b)
		RequireHealthy(t, a, b)
	})

	want := []string{"start a", "start b", "stop b", "stop a"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
}

type fatalRecorder struct {
	testing.TB
	failed bool
}

func (f *fatalRecorder) Helper() {}

func (f *fatalRecorder) Fatalf(string, ...any) { f.failed = true }

func (f *fatalRecorder) Cleanup(func()) {}

func TestStartFailureFailsTest(t *testing.T) {
	var events []string
	tb := &fatalRecorder{TB: t}
	Start(tb, &recorder{name: "broken", events: &events, err: errors.New("boom")})
	if !tb.failed {
		t.Fatal("start failure did not fail the test")
	}
	if len(events) != 0 {
		t.Errorf("events = %v", events)
	}
}
