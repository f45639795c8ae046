// Package resolver obtains the authoritative outcome of a spin.
//
// The outcome is decided elsewhere (normally by the backend) and must not
// be influenced by the animation. Resolvers are composed with decorators:
//
//	r := resolver.WithLogging(
//		resolver.WithRetry(
//			resolver.WithTimeout(resolver.NewHTTP(client), 10*time.Second),
//			resolver.DefaultRetryConfig()),
//		repo, logger)
package resolver

import "context"

// Outcome is the authoritative winner of one spin.
type Outcome struct {
	ProjectID     string
	CandidateID   string
	CandidateName string
}

// Resolver returns the outcome for a project. Implementations must be safe
// for concurrent use and must honor ctx cancellation.
type Resolver interface {
	Resolve(ctx context.Context, projectID string) (Outcome, error)
}

// Func adapts a plain function to the Resolver interface.
type Func func(ctx context.Context, projectID string) (Outcome, error)

// Resolve calls f.
func (f Func) Resolve(ctx context.Context, projectID string) (Outcome, error) {
	return f(ctx, projectID)
}
