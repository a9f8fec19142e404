package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestClampRating(t *testing.T) {
	tests := []struct {
		name   string
		rating float64
		want   float64
	}{
		{name: "inside range", rating: 3, want: 3},
		{name: "upper bound", rating: 5, want: 5},
		{name: "above range", rating: 12, want: 5},
		{name: "below range", rating: -40, want: -5},
		{name: "fractional", rating: -2.5, want: -2.5},
		{name: "nan is neutral", rating: math.NaN(), want: 0},
		{name: "positive infinity", rating: math.Inf(1), want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampRating(tt.rating, DefaultRatingScale))
		})
	}
}

func TestNormalizeRating(t *testing.T) {
	assert.Equal(t, 1.0, NormalizeRating(5, 5))
	assert.Equal(t, -1.0, NormalizeRating(-9, 5))
	assert.Equal(t, 0.4, NormalizeRating(2, 5))
	assert.Equal(t, 0.0, NormalizeRating(3, 0), "non-positive scale yields a neutral score")
}

// TestFinalize checks the score formula: total / presented count.
func TestFinalize(t *testing.T) {
	tally := Tally{"A": 3, "B": -2, "C": 0.6}
	presented := map[string]int{"A": 3, "B": 2, "C": 4}

	got := Finalize(tally, presented)

	want := Scores{"A": 1, "B": -1, "C": 0.15}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(x, y float64) bool {
		return math.Abs(x-y) < 1e-12
	})); diff != "" {
		t.Fatalf("Finalize mismatch (-want +got):\n%s", diff)
	}
}

func TestFinalize_SkipsCandidatesWithoutPropositions(t *testing.T) {
	got := Finalize(Tally{"A": 0, "B": 1}, map[string]int{"A": 0, "B": 1})

	assert.NotContains(t, got, "A")
	assert.Equal(t, 1.0, got["B"])
}

func TestFinalize_StaysWithinBounds(t *testing.T) {
	ratings := []float64{-5, -3, 0, 2, 5, 17, -99}
	tally := Tally{}
	for _, r := range ratings {
		tally.Add("X", NormalizeRating(r, DefaultRatingScale))
	}

	got := Finalize(tally, map[string]int{"X": len(ratings)})

	assert.GreaterOrEqual(t, got["X"], -1.0)
	assert.LessOrEqual(t, got["X"], 1.0)
}

func TestScores_Merge(t *testing.T) {
	existing := Scores{"A": 0.5, "B": -0.25, "C": 0.75}
	fresh := Scores{"B": 1, "D": -1}

	merged := existing.Merge(fresh)

	assert.Equal(t, Scores{"A": 0.5, "B": 1, "C": 0.75, "D": -1}, merged)
	assert.Equal(t, -0.25, existing["B"], "merge must not mutate the receiver")
}

func TestScores_Names(t *testing.T) {
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, Scores{"Gamma": 0, "Alpha": 0, "Beta": 0}.Names())
}

func TestTally(t *testing.T) {
	tally := NewTally([]Candidate{{Name: "A"}, {Name: "B"}})
	assert.Equal(t, Tally{"A": 0, "B": 0}, tally)

	clone := tally.Clone()
	tally.Add("A", 0.4)
	tally.Add("A", 0.2)

	assert.InDelta(t, 0.6, tally["A"], 1e-12)
	assert.Equal(t, 0.0, clone["A"], "clone must be independent")
}
