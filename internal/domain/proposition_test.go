package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPropositionIndex(t *testing.T) {
	idx, collisions := NewPropositionIndex([]Candidate{
		{Name: "A", Propositions: []string{"raise wages", "more trains"}},
		{Name: "B", Propositions: []string{"cut taxes"}},
	})

	assert.Empty(t, collisions)
	assert.Equal(t, PropositionIndex{
		"raise wages": "A",
		"more trains": "A",
		"cut taxes":   "B",
	}, idx)
	assert.Equal(t, []Proposition{
		{Text: "cut taxes", Candidate: "B"},
		{Text: "more trains", Candidate: "A"},
		{Text: "raise wages", Candidate: "A"},
	}, idx.Propositions())
}

// Shared texts are attributed to the last candidate listing them.
func TestNewPropositionIndex_LastWriteWins(t *testing.T) {
	idx, collisions := NewPropositionIndex([]Candidate{
		{Name: "A", Propositions: []string{"shared", "only a"}},
		{Name: "B", Propositions: []string{"shared"}},
	})

	assert.Equal(t, "B", idx["shared"])
	assert.Len(t, idx, 2)
	assert.Equal(t, []Collision{{Text: "shared", Previous: "A", Current: "B"}}, collisions)
}

func TestNewPropositionIndex_RepeatWithinCandidate(t *testing.T) {
	_, collisions := NewPropositionIndex([]Candidate{
		{Name: "A", Propositions: []string{"twice", "twice"}},
	})

	assert.Empty(t, collisions, "a candidate repeating itself is not a collision")
}
