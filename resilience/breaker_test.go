package resilience

import (
	"errors"
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(maxFailures int, timeout time.Duration) (*CircuitBreaker, *clock) {
	c := &clock{t: time.Unix(1700000000, 0)}
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "storage", MaxFailures: maxFailures, Timeout: timeout})
	cb.now = c.now
	return cb, c
}

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	cb, _ := newTestBreaker(2, time.Minute)
	boom := errors.New("502")

	_ = cb.Execute(func() error { return boom })
	if cb.State() != StateClosed {
		t.Fatalf("state = %s after one failure", cb.State())
	}
	_ = cb.Execute(func() error { return boom })
	if cb.State() != StateOpen {
		t.Fatalf("state = %s after two failures", cb.State())
	}

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Errorf("open breaker let the call through: err=%v called=%v", err, called)
	}
}

func TestBreakerHalfOpenRecovers(t *testing.T) {
	cb, clk := newTestBreaker(1, 10*time.Second)
	_ = cb.Execute(func() error { return errors.New("down") })
	if cb.State() != StateOpen {
		t.Fatal("expected open")
	}

	clk.advance(10 * time.Second)
	if cb.State() != StateHalfOpen {
		t.Fatalf("state = %s, want half-open", cb.State())
	}
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("state = %s, want closed", cb.State())
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	var transitions []string
	cb, clk := newTestBreaker(1, time.Second)
	cb.cfg.OnStateChange = func(_ string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	}

	_ = cb.Execute(func() error { return errors.New("x") })
	clk.advance(time.Second)
	_ = cb.Execute(func() error { return errors.New("still x") })

	if cb.State() != StateOpen {
		t.Errorf("state = %s", cb.State())
	}
	want := []string{"closed->open", "open->half-open", "half-open->open"}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transitions = %v, want %v", transitions, want)
		}
	}
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	cb, _ := newTestBreaker(2, time.Minute)
	_ = cb.Execute(func() error { return errors.New("x") })
	_ = cb.Execute(func() error { return nil })
	_ = cb.Execute(func() error { return errors.New("x") })
	if cb.State() != StateClosed {
		t.Errorf("non-consecutive failures opened the circuit")
	}
}
