package domain

import (
	"maps"
	"slices"
)

// Proposition is a policy statement together with the candidate it is
// attributed to.
type Proposition struct {
	// Text is the statement shown to the user.
	Text string

	// Candidate is the name of the owning candidate.
	Candidate string
}

// PropositionIndex maps proposition text to the owning candidate's name.
type PropositionIndex map[string]string

// Collision records two candidates sharing the exact same proposition text.
// The later candidate owns the text in the index.
type Collision struct {
	Text     string
	Previous string
	Current  string
}

// NewPropositionIndex indexes the propositions of the given candidates in
// order. Identical texts are attributed to the last candidate that lists
// them; each such overwrite is reported as a Collision.
func NewPropositionIndex(candidates []Candidate) (PropositionIndex, []Collision) {
	idx := make(PropositionIndex)
	var collisions []Collision
	for _, c := range candidates {
		for _, text := range c.Propositions {
			if prev, ok := idx[text]; ok && prev != c.Name {
				collisions = append(collisions, Collision{Text: text, Previous: prev, Current: c.Name})
			}
			idx[text] = c.Name
		}
	}
	return idx, collisions
}

// Propositions returns the indexed propositions sorted by text.
// The order is stable so that callers own any randomization.
func (idx PropositionIndex) Propositions() []Proposition {
	texts := slices.Sorted(maps.Keys(idx))
	out := make([]Proposition, len(texts))
	for i, text := range texts {
		out[i] = Proposition{Text: text, Candidate: idx[text]}
	}
	return out
}
