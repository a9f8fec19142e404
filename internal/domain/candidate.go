// Package domain contains pure, dependency-free domain models and types
// for the alignment questionnaire.
package domain

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Candidate is a political candidate and the propositions of its programme.
// A Candidate is built once per run from its profile file and is never
// mutated afterwards.
type Candidate struct {
	// Name is the display name, also used as the key of result files.
	Name string `json:"name"`

	// Nickname is the lowercase identifier used for selection.
	// It is unique within a loaded set of candidates.
	Nickname string `json:"nickname"`

	// Party is the candidate's political party.
	Party string `json:"parti"`

	// Website is the candidate's campaign site.
	Website string `json:"site"`

	// Propositions holds the policy statements in programme order.
	Propositions []string `json:"propositions"`
}

// PropositionCount returns the number of propositions in the programme.
func (c Candidate) PropositionCount() int { return len(c.Propositions) }

// CandidateSet indexes candidates by nickname while keeping load order.
type CandidateSet struct {
	ordered    []Candidate
	byNickname map[string]int
}

// NewCandidateSet builds a set from the given candidates.
// It returns ErrDuplicateNickname if two candidates share a nickname.
func NewCandidateSet(candidates []Candidate) (*CandidateSet, error) {
	set := &CandidateSet{
		ordered:    make([]Candidate, 0, len(candidates)),
		byNickname: make(map[string]int, len(candidates)),
	}
	for _, c := range candidates {
		if _, ok := set.byNickname[c.Nickname]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNickname, c.Nickname)
		}
		set.byNickname[c.Nickname] = len(set.ordered)
		set.ordered = append(set.ordered, c)
	}
	return set, nil
}

// All returns every candidate in load order.
// The returned slice is a copy; the candidates themselves must not be modified.
func (s *CandidateSet) All() []Candidate { return slices.Clone(s.ordered) }

// Len returns the number of candidates in the set.
func (s *CandidateSet) Len() int { return len(s.ordered) }

// ByNickname looks up a candidate by its exact nickname.
func (s *CandidateSet) ByNickname(nickname string) (Candidate, bool) {
	i, ok := s.byNickname[nickname]
	if !ok {
		return Candidate{}, false
	}
	return s.ordered[i], true
}

// Nicknames returns every nickname in load order.
func (s *CandidateSet) Nicknames() []string {
	out := make([]string, len(s.ordered))
	for i, c := range s.ordered {
		out[i] = c.Nickname
	}
	return out
}

// ValidateDisplayName checks that a user display name can be used as the
// base name of the result files.
func ValidateDisplayName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return fmt.Errorf("%w: empty", ErrInvalidDisplayName)
	case trimmed == "." || trimmed == "..":
		return fmt.Errorf("%w: %q", ErrInvalidDisplayName, name)
	case strings.ContainsRune(trimmed, filepath.Separator) || strings.ContainsRune(trimmed, '/'):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidDisplayName, name)
	}
	return nil
}
