package resolver

import (
	"context"

	"github.com/whotakesshowers/wts/internal/api"
)

// Randomizer is the subset of the API client the HTTP resolver needs.
type Randomizer interface {
	Randomize(ctx context.Context, projectID string) (*api.RandomizeResponse, error)
}

// HTTPResolver asks the backend to pick a winner via POST /randomize.
type HTTPResolver struct {
	client Randomizer
}

// NewHTTP creates a resolver backed by the picker API.
func NewHTTP(client Randomizer) *HTTPResolver {
	return &HTTPResolver{client: client}
}

func (h *HTTPResolver) Resolve(ctx context.Context, projectID string) (Outcome, error) {
	if projectID == "" {
		return Outcome{}, &ResolutionError{Err: ErrEmptyProject}
	}
	resp, err := h.client.Randomize(ctx, projectID)
	if err != nil {
		return Outcome{}, wrap(projectID, err)
	}
	return Outcome{
		ProjectID:     projectID,
		CandidateID:   resp.CandidateID,
		CandidateName: resp.CandidateName,
	}, nil
}
