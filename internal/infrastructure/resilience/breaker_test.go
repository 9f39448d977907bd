package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoSingleAttemptDoesNotRetry(t *testing.T) {
	b := New("upstream", Config{MaxAttempts: 1, BreakerEnabled: false}, func(error) Classification {
		return Classification{Retryable: true, RecordFailure: true}
	})

	attempts := 0
	errBoom := errors.New("boom")
	err := b.Do(context.Background(), func(context.Context) error {
		attempts++
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}

func TestDoRetriesRetryableFailure(t *testing.T) {
	b := New("upstream", Config{MaxAttempts: 3, Backoff: time.Millisecond, BreakerEnabled: false}, func(err error) Classification {
		return Classification{Retryable: true, RecordFailure: true}
	})

	attempts := 0
	err := b.Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	errFatal := errors.New("fatal")
	b := New("upstream", Config{MaxAttempts: 3, Backoff: time.Millisecond, BreakerEnabled: false}, func(err error) Classification {
		return Classification{Retryable: false, RecordFailure: true}
	})

	attempts := 0
	err := b.Do(context.Background(), func(context.Context) error {
		attempts++
		return errFatal
	})
	if !errors.Is(err, errFatal) {
		t.Fatalf("expected fatal, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	b := New("upstream", Config{
		MaxAttempts:             1,
		BreakerEnabled:          true,
		BreakerMinRequests:      3,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      time.Minute,
		BreakerHalfOpenMaxCalls: 1,
	}, nil)

	errBoom := errors.New("boom")
	for i := 0; i < 3; i++ {
		_ = b.Do(context.Background(), func(context.Context) error { return errBoom })
	}

	err := b.Do(context.Background(), func(context.Context) error { return nil })
	if !IsCircuitOpen(err) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

func TestBreakerIgnoresUnrecordedFailures(t *testing.T) {
	b := New("upstream", Config{
		MaxAttempts:         1,
		BreakerEnabled:      true,
		BreakerMinRequests:  3,
		BreakerFailureRatio: 0.5,
		BreakerOpenTimeout:  time.Minute,
	}, func(error) Classification {
		return Classification{RecordFailure: false}
	})

	errBoom := errors.New("boom")
	for i := 0; i < 5; i++ {
		_ = b.Do(context.Background(), func(context.Context) error { return errBoom })
	}

	err := b.Do(context.Background(), func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("unrecorded failures must not trip the breaker, got %v", err)
	}
}

func TestDoHonorsCancelledContext(t *testing.T) {
	b := New("upstream", Config{MaxAttempts: 1, BreakerEnabled: false}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Do(ctx, func(context.Context) error {
		t.Fatal("callback must not run on a cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
