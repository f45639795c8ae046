package roster

import "strings"

// Candidate is a participant that can be picked by a spin.
type Candidate struct {
	ID       string
	Name     string
	PhotoURL string // optional
}

// HasPhoto reports whether the candidate carries a usable photo reference.
func (c Candidate) HasPhoto() bool {
	return strings.TrimSpace(c.PhotoURL) != ""
}

// Project is a named grouping of candidates a spin is run against.
type Project struct {
	ID           string
	Name         string
	CandidateIDs []string
}

// Members returns the candidates belonging to p, in the order they appear in
// all. IDs in p that are missing from all are skipped.
func (p Project) Members(all []Candidate) []Candidate {
	want := make(map[string]bool, len(p.CandidateIDs))
	for _, id := range p.CandidateIDs {
		want[id] = true
	}

	members := make([]Candidate, 0, len(p.CandidateIDs))
	for _, c := range all {
		if want[c.ID] {
			members = append(members, c)
		}
	}
	return members
}
