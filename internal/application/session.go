package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// globalShuffler uses the auto-seeded top-level generator of math/rand/v2,
// so every run gets a fresh permutation.
type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// RandomShuffler returns the unseeded shuffler used for real sessions.
func RandomShuffler() Shuffler { return globalShuffler{} }

// SessionPlan is the ordered list of propositions a session presents,
// together with the per-candidate counts used for normalization.
type SessionPlan struct {
	// Propositions is the presentation order.
	Propositions []domain.Proposition

	// Presented maps each selected candidate's name to the number of its
	// propositions included in the session.
	Presented map[string]int

	// Collisions lists proposition texts shared by several candidates.
	Collisions []domain.Collision
}

// BuildPlan indexes the propositions of the selected candidates and
// shuffles the presentation order.
//
// When maxPerCandidate is positive, a random sample of at most that many
// propositions is drawn from each candidate first. Presented counts every
// sampled proposition, including texts that another candidate took over in
// the index.
func BuildPlan(selected []domain.Candidate, maxPerCandidate int, shuffler Shuffler) SessionPlan {
	sampled := make([]domain.Candidate, len(selected))
	presented := make(map[string]int, len(selected))
	for i, c := range selected {
		props := slices.Clone(c.Propositions)
		if maxPerCandidate > 0 && len(props) > maxPerCandidate {
			shuffler.Shuffle(len(props), func(a, b int) { props[a], props[b] = props[b], props[a] })
			props = props[:maxPerCandidate]
		}
		c.Propositions = props
		sampled[i] = c
		presented[c.Name] = len(props)
	}

	idx, collisions := domain.NewPropositionIndex(sampled)
	order := idx.Propositions()
	shuffler.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })

	return SessionPlan{
		Propositions: order,
		Presented:    presented,
		Collisions:   collisions,
	}
}

// SessionRunner asks the user to rate every proposition of a plan and
// accumulates the normalized ratings per candidate.
type SessionRunner struct {
	prompter ports.Prompter
	observer ports.SessionObserver
	logger   *zap.Logger
	scale    int
	strict   bool
}

// NewSessionRunner creates a runner rating on [-scale, scale].
// With strict set, non-numeric input aborts the session; otherwise the
// proposition is asked again.
func NewSessionRunner(prompter ports.Prompter, observer ports.SessionObserver, logger *zap.Logger, scale int, strict bool) *SessionRunner {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRunner{
		prompter: prompter,
		observer: observer,
		logger:   logger,
		scale:    scale,
		strict:   strict,
	}
}

// Run presents the plan's propositions in order and returns a new tally
// holding the input totals plus every normalized rating. The input tally
// is not modified. There is no undo: each answer is final.
func (r *SessionRunner) Run(ctx context.Context, plan SessionPlan, tally domain.Tally) (domain.Tally, error) {
	out := tally.Clone()
	if out == nil {
		out = domain.Tally{}
	}

	total := len(plan.Propositions)
	for i, prop := range plan.Propositions {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		rating, err := r.ask(ctx, ports.RatingRequest{Index: i, Total: total, Text: prop.Text, Scale: r.scale})
		if err != nil {
			return out, fmt.Errorf("proposition %d/%d: %w", i+1, total, err)
		}

		clamped := domain.ClampRating(rating, r.scale)
		out.Add(prop.Candidate, domain.NormalizeRating(clamped, r.scale))
		r.observer.ObserveRating(prop.Candidate, clamped)
		r.logger.Debug("proposition rated",
			zap.Int("index", i),
			zap.String("candidate", prop.Candidate),
			zap.Float64("rating", clamped),
		)
	}
	return out, nil
}

// ask repeats the rating prompt on malformed input unless strict.
func (r *SessionRunner) ask(ctx context.Context, req ports.RatingRequest) (float64, error) {
	for {
		rating, err := r.prompter.Rating(ctx, req)
		if err == nil {
			return rating, nil
		}

		var formatErr *domain.RatingFormatError
		if r.strict || !errors.As(err, &formatErr) {
			return 0, err
		}
		r.prompter.Warn(fmt.Sprintf("%q is not a number; enter a value between %d and %d.", formatErr.Input, -r.scale, r.scale))
	}
}
