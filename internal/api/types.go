package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/whotakesshowers/wts/internal/roster"
)

// Candidate mirrors the backend candidate resource.
type Candidate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Roster converts the resource to its domain form.
func (c Candidate) Roster() roster.Candidate {
	return roster.Candidate{ID: c.ID, Name: c.Name, PhotoURL: c.PhotoURL}
}

// Project mirrors the backend project resource. CandidateIDs is a
// JSON-encoded array of candidate IDs, as the backend stores it.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CandidateIDs string    `json:"candidate_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Roster decodes the candidate ID list and converts the resource to its
// domain form.
func (p Project) Roster() (roster.Project, error) {
	var ids []string
	if p.CandidateIDs != "" {
		if err := json.Unmarshal([]byte(p.CandidateIDs), &ids); err != nil {
			return roster.Project{}, fmt.Errorf("decode candidate_ids of project %s: %w", p.ID, err)
		}
	}
	return roster.Project{ID: p.ID, Name: p.Name, CandidateIDs: ids}, nil
}

// History is one outcome recorded by the backend.
type History struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	ProjectName   string    `json:"project_name"`
	CandidateID   string    `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	SelectedAt    time.Time `json:"selected_at"`
	UserID        string    `json:"user_id"`
}

// HistoryQuery filters ListHistory. Zero values are omitted.
type HistoryQuery struct {
	ProjectID string
	Limit     int
}

type randomizeRequest struct {
	ProjectID string `json:"project_id"`
}

// RandomizeResponse carries the winner picked by the backend.
type RandomizeResponse struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
}

type errorBody struct {
	Error string `json:"error"`
}
