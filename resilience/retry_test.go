package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}
}

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), DefaultRetryConfig(), func() (string, error) {
		calls++
		return "signed", nil
	})
	if err != nil || got != "signed" || calls != 1 {
		t.Errorf("got=%q err=%v calls=%d", got, err, calls)
	}
}

func TestRetrySucceedsAfterTransientErrors(t *testing.T) {
	calls := 0
	var retried []int
	cfg := fastRetry(3)
	cfg.OnRetry = func(attempt int, _ error, _ time.Duration) { retried = append(retried, attempt) }

	got, err := Retry(context.Background(), cfg, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("connection reset")
		}
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("got=%d err=%v", got, err)
	}
	if len(retried) != 2 || retried[0] != 1 || retried[1] != 2 {
		t.Errorf("OnRetry attempts = %v", retried)
	}
}

func TestRetryReturnsLastError(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetry(3), func() (int, error) {
		calls++
		return 0, errors.New("still down")
	})
	if err == nil || err.Error() != "still down" {
		t.Errorf("err = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d", calls)
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	permanent := errors.New("forbidden")
	cfg := fastRetry(5)
	cfg.RetryIf = func(err error) bool { return !errors.Is(err, permanent) }

	calls := 0
	_, err := Retry(context.Background(), cfg, func() (int, error) {
		calls++
		return 0, permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("err=%v calls=%d", err, calls)
	}
}

func TestRetryHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Retry(ctx, fastRetry(3), func() (int, error) {
		calls++
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) || calls != 0 {
		t.Errorf("err=%v calls=%d", err, calls)
	}
}

func TestBackoffIsCapped(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: time.Second, MaxBackoff: 3 * time.Second, BackoffFactor: 10}
	cfg.normalize()
	if got := cfg.backoff(1); got != time.Second {
		t.Errorf("backoff(1) = %v", got)
	}
	if got := cfg.backoff(4); got != 3*time.Second {
		t.Errorf("backoff(4) = %v", got)
	}
}
