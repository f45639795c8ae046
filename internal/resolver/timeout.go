package resolver

import (
	"context"
	"time"
)

type timeoutResolver struct {
	inner   Resolver
	timeout time.Duration
}

// WithTimeout bounds every call to inner. A non-positive timeout disables
// the bound.
func WithTimeout(inner Resolver, d time.Duration) Resolver {
	if d <= 0 {
		return inner
	}
	return &timeoutResolver{inner: inner, timeout: d}
}

func (t *timeoutResolver) Resolve(ctx context.Context, projectID string) (Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := t.inner.Resolve(ctx, projectID)
	if err != nil {
		return Outcome{}, wrap(projectID, err)
	}
	return out, nil
}
