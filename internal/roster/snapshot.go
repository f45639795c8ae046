package roster

import "iter"

// Snapshot is a read-only ordered view of candidates captured when a spin
// starts. Later changes to the source roster are not visible through it.
type Snapshot struct {
	candidates []Candidate
	index      map[string]int
}

// Capture copies candidates into a new Snapshot. If an ID repeats, the first
// occurrence wins the lookup.
func Capture(candidates []Candidate) Snapshot {
	cs := make([]Candidate, len(candidates))
	copy(cs, candidates)

	idx := make(map[string]int, len(cs))
	for i, c := range cs {
		if _, dup := idx[c.ID]; !dup {
			idx[c.ID] = i
		}
	}
	return Snapshot{candidates: cs, index: idx}
}

// CaptureProject captures the members of p drawn from all.
func CaptureProject(p Project, all []Candidate) Snapshot {
	return Capture(p.Members(all))
}

// Len returns the number of candidates.
func (s Snapshot) Len() int {
	return len(s.candidates)
}

// Empty reports whether the snapshot has no candidates.
func (s Snapshot) Empty() bool {
	return len(s.candidates) == 0
}

// At returns the candidate at position i. It panics if i is out of range.
func (s Snapshot) At(i int) Candidate {
	return s.candidates[i]
}

// IndexOf returns the position of the candidate with the given ID.
func (s Snapshot) IndexOf(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// All iterates over the candidates with their positions.
func (s Snapshot) All() iter.Seq2[int, Candidate] {
	return func(yield func(int, Candidate) bool) {
		for i, c := range s.candidates {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Names returns the candidate names in order.
func (s Snapshot) Names() []string {
	names := make([]string, len(s.candidates))
	for i, c := range s.candidates {
		names[i] = c.Name
	}
	return names
}
