// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"
	"time"

	"github.com/ahrav/go-ballot/internal/domain"
)

// CandidateSource loads candidate profiles.
// Implementations could read a directory of JSON files, an embedded
// filesystem or a remote catalogue.
type CandidateSource interface {
	// Load returns every candidate found in the source, in a stable order.
	// A profile missing a required field must fail the whole load with a
	// *domain.MissingFieldError.
	Load(ctx context.Context) ([]domain.Candidate, error)
}

// ResultStore persists normalized scores per user display name.
type ResultStore interface {
	// Exists reports whether a result was previously saved for the name.
	Exists(ctx context.Context, displayName string) (bool, error)

	// Load reads a previously saved result.
	// It returns ErrResultNotFound if nothing was saved for the name.
	Load(ctx context.Context, displayName string) (domain.Scores, error)

	// Save writes the result, replacing any previous content, and returns
	// the location it was written to.
	Save(ctx context.Context, displayName string, scores domain.Scores) (string, error)
}

// ChartRenderer draws scores to an image file.
type ChartRenderer interface {
	// RenderChart writes a bar chart of the scores to path.
	RenderChart(ctx context.Context, path, title string, scores domain.Scores) error
}

// ScoreDisplay shows final scores to the user interactively.
type ScoreDisplay interface {
	// ShowScores presents the scores of the given candidates.
	ShowScores(ctx context.Context, candidates []domain.Candidate, scores domain.Scores) error
}

// RatingRequest describes one proposition to be rated.
type RatingRequest struct {
	// Index is the zero-based position of the proposition in the session.
	Index int

	// Total is the number of propositions in the session.
	Total int

	// Text is the proposition shown to the user.
	Text string

	// Scale bounds the rating to [-Scale, Scale].
	Scale int
}

// Prompter collects answers from the user.
// Every method blocks until a full line of input is available.
type Prompter interface {
	// DisplayName asks for the name results are saved under.
	DisplayName(ctx context.Context) (string, error)

	// Selection asks for a dash-delimited list of nicknames.
	Selection(ctx context.Context, nicknames []string) (string, error)

	// Rating asks for an agreement score. Empty input yields 0.
	// Non-numeric input yields a *domain.RatingFormatError.
	Rating(ctx context.Context, req RatingRequest) (float64, error)

	// Confirm asks a yes/no question; empty input yields def.
	Confirm(ctx context.Context, question string, def bool) (bool, error)

	// Notify prints an informational message.
	Notify(msg string)

	// Warn prints a message about input that must be entered again.
	Warn(msg string)
}

// SessionObserver records operational metrics about questionnaire sessions.
// Implementations should integrate with observability platforms like
// Prometheus.
type SessionObserver interface {
	// ObserveRating records a single clamped rating for a candidate.
	ObserveRating(candidate string, rating float64)

	// ObserveScores records the final normalized scores of a session.
	ObserveScores(scores domain.Scores)

	// ObserveSession records how long a session lasted and how many
	// propositions were rated.
	ObserveSession(duration time.Duration, rated int)
}

// NopObserver is a SessionObserver that records nothing.
type NopObserver struct{}

// ObserveRating implements SessionObserver.
func (NopObserver) ObserveRating(string, float64) {}

// ObserveScores implements SessionObserver.
func (NopObserver) ObserveScores(domain.Scores) {}

// ObserveSession implements SessionObserver.
func (NopObserver) ObserveSession(time.Duration, int) {}
