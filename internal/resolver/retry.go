package resolver

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/whotakesshowers/wts/internal/api"
)

// RetryConfig controls retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns a single-attempt config. Randomize records a
// history row on the server, so retries are opt-in.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 1,
		InitialWait: 200 * time.Millisecond,
		MaxWait:     2 * time.Second,
		Multiplier:  2.0,
	}
}

type retryResolver struct {
	inner  Resolver
	config RetryConfig
}

// WithRetry wraps a Resolver with retry logic for temporary errors.
func WithRetry(inner Resolver, cfg RetryConfig) Resolver {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retryResolver{inner: inner, config: cfg}
}

func (r *retryResolver) Resolve(ctx context.Context, projectID string) (Outcome, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		out, err := r.inner.Resolve(ctx, projectID)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return Outcome{}, wrap(projectID, err)
		}
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return Outcome{}, wrap(projectID, ctx.Err())
		case <-time.After(r.backoff(attempt)):
		}
	}

	return Outcome{}, wrap(projectID, lastErr)
}

// shouldRetry reports whether err is worth another attempt.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrEmptyProject) {
		return false
	}

	var se *api.StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}

	// Transport failures are treated as transient.
	return true
}

func (r *retryResolver) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
