package resolver

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the Mock resolver.
type MockResponse struct {
	Outcome Outcome
	Err     error
	// Gate, when set, blocks the call until it is closed or ctx ends.
	Gate <-chan struct{}
}

// Mock is a deterministic Resolver for tests. It returns canned responses
// in FIFO order and records every project ID it was asked about.
type Mock struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []string
}

// NewMock creates a Mock with the given canned responses.
func NewMock(responses ...MockResponse) *Mock {
	return &Mock{responses: responses}
}

// Resolve returns the next canned response. An empty queue yields a
// ResolutionError.
func (m *Mock) Resolve(ctx context.Context, projectID string) (Outcome, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, projectID)
	if len(m.responses) == 0 {
		m.mu.Unlock()
		return Outcome{}, &ResolutionError{ProjectID: projectID, Err: errNoResponse}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	m.mu.Unlock()

	if resp.Gate != nil {
		select {
		case <-resp.Gate:
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		}
	}
	if resp.Err != nil {
		return Outcome{}, resp.Err
	}
	out := resp.Outcome
	if out.ProjectID == "" {
		out.ProjectID = projectID
	}
	return out, nil
}

// CallCount returns the number of Resolve calls made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
