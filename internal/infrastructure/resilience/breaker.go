package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Classification tells the breaker how to treat a failure: whether the
// attempt may be repeated and whether it counts toward tripping.
type Classification struct {
	Retryable     bool
	RecordFailure bool
}

type Classifier func(err error) Classification

type Config struct {
	// MaxAttempts of 1 disables retries entirely.
	MaxAttempts int
	Backoff     time.Duration

	BreakerEnabled          bool
	BreakerMinRequests      uint32
	BreakerFailureRatio     float64
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxCalls uint32
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:             1,
		Backoff:                 100 * time.Millisecond,
		BreakerEnabled:          true,
		BreakerMinRequests:      5,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      30 * time.Second,
		BreakerHalfOpenMaxCalls: 1,
	}
}

func (c Config) normalize() Config {
	out := c
	def := DefaultConfig()
	if out.MaxAttempts <= 0 {
		out.MaxAttempts = def.MaxAttempts
	}
	if out.Backoff <= 0 {
		out.Backoff = def.Backoff
	}
	if out.BreakerMinRequests == 0 {
		out.BreakerMinRequests = def.BreakerMinRequests
	}
	if out.BreakerFailureRatio <= 0 || out.BreakerFailureRatio > 1 {
		out.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if out.BreakerOpenTimeout <= 0 {
		out.BreakerOpenTimeout = def.BreakerOpenTimeout
	}
	if out.BreakerHalfOpenMaxCalls == 0 {
		out.BreakerHalfOpenMaxCalls = def.BreakerHalfOpenMaxCalls
	}
	return out
}

// Breaker guards calls to a single upstream. Failures past the
// configured ratio open the circuit and later calls fail fast until the
// open timeout elapses.
type Breaker struct {
	cfg      Config
	classify Classifier
	cb       *gobreaker.CircuitBreaker[any]
}

func New(name string, cfg Config, classify Classifier) *Breaker {
	cfg = cfg.normalize()
	if classify == nil {
		classify = func(error) Classification {
			return Classification{RecordFailure: true}
		}
	}
	b := &Breaker{cfg: cfg, classify: classify}
	if !cfg.BreakerEnabled {
		return b
	}
	b.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.BreakerHalfOpenMaxCalls,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerFailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !classify(err).RecordFailure
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit_breaker_state_change", "upstream", name, "from", from.String(), "to", to.String())
		},
	})
	return b
}

func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("resilience: callback is nil")
	}
	if b.cb == nil {
		return b.withRetry(ctx, fn)
	}
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.withRetry(ctx, fn)
	})
	return err
}

func (b *Breaker) withRetry(ctx context.Context, fn func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= b.cfg.MaxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !b.classify(err).Retryable || attempt == b.cfg.MaxAttempts {
			return err
		}
		slog.Warn("retry_attempt",
			"attempt", attempt,
			"max_attempts", b.cfg.MaxAttempts,
			"error", err,
		)
		timer := time.NewTimer(b.cfg.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
	return err
}

func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
