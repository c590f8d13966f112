package core

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// RetryConfig controls start retries for external components.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       float64
	Retryable    func(error) bool
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
		Retryable: func(err error) bool {
			return err != nil
		},
	}
}

// ComponentConfig holds per-component framework settings. Only externals
// consume the retry section; modules fail fast.
type ComponentConfig struct {
	Retry RetryConfig
}

// Retryer runs an operation with exponential backoff and jitter.
type Retryer struct {
	config RetryConfig
	logger Logger
}

func newRetryer(config RetryConfig, logger Logger) *Retryer {
	return &Retryer{config: config, logger: logger}
}

func (r *Retryer) Do(ctx context.Context, operation string, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			if attempt > 1 {
				r.logger.Info("operation succeeded after retry",
					Field{"operation", operation},
					Field{"attempt", attempt})
			}
			return nil
		}
		lastErr = err

		if !r.config.Retryable(err) {
			r.logger.Debug("error not retryable, failing immediately",
				Field{"operation", operation},
				Field{"error", err})
			return err
		}

		if attempt >= r.config.MaxAttempts {
			break
		}

		delay := r.delay(attempt)
		r.logger.Warn("operation failed, retrying",
			Field{"operation", operation},
			Field{"attempt", attempt},
			Field{"max_attempts", r.config.MaxAttempts},
			Field{"delay", delay},
			Field{"error", err})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", r.config.MaxAttempts, lastErr)
}

func (r *Retryer) delay(attempt int) time.Duration {
	d := float64(r.config.InitialDelay) * math.Pow(r.config.Multiplier, float64(attempt-1))
	if r.config.Jitter > 0 {
		d += d * r.config.Jitter * (rand.Float64()*2 - 1)
	}
	if ceil := float64(r.config.MaxDelay); d > ceil {
		d = ceil
	}
	return time.Duration(d)
}
