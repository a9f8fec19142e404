package domain

import (
	"maps"
	"math"
	"slices"
)

// DefaultRatingScale bounds the agreement scale: ratings lie in
// [-DefaultRatingScale, DefaultRatingScale].
const DefaultRatingScale = 5

// ClampRating bounds a raw rating to [-scale, scale].
// NaN is treated as a neutral rating.
func ClampRating(rating float64, scale int) float64 {
	if math.IsNaN(rating) {
		return 0
	}
	s := float64(scale)
	return math.Max(-s, math.Min(s, rating))
}

// NormalizeRating clamps a raw rating and maps it to [-1, 1].
func NormalizeRating(rating float64, scale int) float64 {
	if scale <= 0 {
		return 0
	}
	return ClampRating(rating, scale) / float64(scale)
}

// Tally holds the running total of normalized ratings per candidate name.
// A Tally is owned by a single session and passed explicitly between steps.
type Tally map[string]float64

// NewTally returns a tally with a zero total for every given candidate.
func NewTally(candidates []Candidate) Tally {
	t := make(Tally, len(candidates))
	for _, c := range candidates {
		t[c.Name] = 0
	}
	return t
}

// Add accumulates a normalized rating for the named candidate.
func (t Tally) Add(name string, normalized float64) { t[name] += normalized }

// Clone returns an independent copy of the tally.
func (t Tally) Clone() Tally { return maps.Clone(t) }

// Scores maps candidate names to normalized scores in [-1, 1].
// It is the content of a result file.
type Scores map[string]float64

// Finalize divides each total by the number of propositions that were
// presented for that candidate. Candidates with no presented proposition
// are left out of the result since nothing was rated for them.
func Finalize(t Tally, presented map[string]int) Scores {
	out := make(Scores, len(presented))
	for name, n := range presented {
		if n <= 0 {
			continue
		}
		out[name] = t[name] / float64(n)
	}
	return out
}

// Merge returns a copy of s where every entry of fresh overwrites the
// existing one. Entries of s that fresh does not mention are preserved.
func (s Scores) Merge(fresh Scores) Scores {
	out := make(Scores, len(s)+len(fresh))
	maps.Copy(out, s)
	maps.Copy(out, fresh)
	return out
}

// Names returns the candidate names in lexical order.
func (s Scores) Names() []string { return slices.Sorted(maps.Keys(s)) }

// Clone returns an independent copy of the scores.
func (s Scores) Clone() Scores { return maps.Clone(s) }
