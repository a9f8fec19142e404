package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

// NoShuffle leaves every sequence in its original order.
type NoShuffle struct{}

// Shuffle implements application.Shuffler without moving anything.
func (NoShuffle) Shuffle(int, func(i, j int)) {}

// ReverseShuffle reverses every sequence, a deterministic non-identity
// permutation.
type ReverseShuffle struct{}

// Shuffle implements application.Shuffler.
func (ReverseShuffle) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

// StaticSource implements ports.CandidateSource over a fixed slice.
type StaticSource struct {
	Candidates []domain.Candidate
	Err        error
}

// Load implements ports.CandidateSource.
func (s StaticSource) Load(context.Context) ([]domain.Candidate, error) {
	return s.Candidates, s.Err
}

// RecordingObserver implements ports.SessionObserver and keeps every call.
type RecordingObserver struct {
	mu       sync.Mutex
	Ratings  map[string][]float64
	Scores   []domain.Scores
	Sessions []int
}

var _ ports.SessionObserver = (*RecordingObserver)(nil)

// NewRecordingObserver creates an empty RecordingObserver.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{Ratings: make(map[string][]float64)}
}

// ObserveRating implements ports.SessionObserver.
func (o *RecordingObserver) ObserveRating(candidate string, rating float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Ratings[candidate] = append(o.Ratings[candidate], rating)
}

// ObserveScores implements ports.SessionObserver.
func (o *RecordingObserver) ObserveScores(scores domain.Scores) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Scores = append(o.Scores, scores.Clone())
}

// ObserveSession implements ports.SessionObserver.
func (o *RecordingObserver) ObserveSession(_ time.Duration, rated int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Sessions = append(o.Sessions, rated)
}

// ChartCall records one RenderChart invocation.
type ChartCall struct {
	Path   string
	Title  string
	Scores domain.Scores
}

// RecordingChart implements ports.ChartRenderer without drawing anything.
type RecordingChart struct {
	Calls []ChartCall
	Err   error
}

// RenderChart implements ports.ChartRenderer.
func (c *RecordingChart) RenderChart(_ context.Context, path, title string, scores domain.Scores) error {
	c.Calls = append(c.Calls, ChartCall{Path: path, Title: title, Scores: scores.Clone()})
	return c.Err
}

// RecordingDisplay implements ports.ScoreDisplay and keeps what it was shown.
type RecordingDisplay struct {
	Shown []domain.Scores
}

// ShowScores implements ports.ScoreDisplay.
func (d *RecordingDisplay) ShowScores(_ context.Context, _ []domain.Candidate, scores domain.Scores) error {
	d.Shown = append(d.Shown, scores.Clone())
	return nil
}

// MemoryResultStore implements ports.ResultStore in memory.
type MemoryResultStore struct {
	mu      sync.Mutex
	Results map[string]domain.Scores
	Saves   int
	Err     error
}

var _ ports.ResultStore = (*MemoryResultStore)(nil)

// NewMemoryResultStore creates a store holding the given results.
func NewMemoryResultStore(results map[string]domain.Scores) *MemoryResultStore {
	if results == nil {
		results = make(map[string]domain.Scores)
	}
	return &MemoryResultStore{Results: results}
}

// Exists implements ports.ResultStore.
func (s *MemoryResultStore) Exists(_ context.Context, displayName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Results[displayName]
	return ok, s.Err
}

// Load implements ports.ResultStore.
func (s *MemoryResultStore) Load(_ context.Context, displayName string) (domain.Scores, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	scores, ok := s.Results[displayName]
	if !ok {
		return nil, ports.ErrResultNotFound
	}
	return scores.Clone(), nil
}

// Save implements ports.ResultStore.
func (s *MemoryResultStore) Save(_ context.Context, displayName string, scores domain.Scores) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.Results[displayName] = scores.Clone()
	s.Saves++
	return "memory://" + displayName, nil
}
