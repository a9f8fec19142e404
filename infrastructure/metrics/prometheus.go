// Package metrics records questionnaire sessions as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.SessionObserver = (*SessionMetrics)(nil)

// SessionMetrics implements the SessionObserver interface using Prometheus.
// Metrics live in a private registry so that a single CLI run can dump them
// to a node-exporter textfile.
type SessionMetrics struct {
	registry *prometheus.Registry

	ratingsTotal    *prometheus.CounterVec
	ratingValues    prometheus.Histogram
	candidateScore  *prometheus.GaugeVec
	sessionDuration prometheus.Histogram
	sessionsTotal   prometheus.Counter
	propositions    prometheus.Gauge
}

// NewSessionMetrics creates a SessionMetrics with its own registry.
func NewSessionMetrics() *SessionMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &SessionMetrics{
		registry: reg,
		ratingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ballot_ratings_total",
				Help: "Number of propositions rated, by owning candidate.",
			},
			[]string{"candidate"},
		),
		ratingValues: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ballot_rating_value",
			Help:    "Distribution of clamped ratings.",
			Buckets: prometheus.LinearBuckets(-4, 1, 9),
		}),
		candidateScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ballot_candidate_score",
				Help: "Normalized score of the last session, by candidate.",
			},
			[]string{"candidate"},
		),
		sessionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ballot_session_duration_seconds",
			Help:    "Wall time from candidate loading to final scores.",
			Buckets: prometheus.ExponentialBuckets(10, 2, 8),
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ballot_sessions_total",
			Help: "Number of completed sessions.",
		}),
		propositions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ballot_session_propositions",
			Help: "Number of propositions rated in the last session.",
		}),
	}
}

// Registry returns the registry the metrics are registered in.
func (m *SessionMetrics) Registry() *prometheus.Registry { return m.registry }

// ObserveRating implements ports.SessionObserver.
func (m *SessionMetrics) ObserveRating(candidate string, rating float64) {
	m.ratingsTotal.WithLabelValues(candidate).Inc()
	m.ratingValues.Observe(rating)
}

// ObserveScores implements ports.SessionObserver.
func (m *SessionMetrics) ObserveScores(scores domain.Scores) {
	for name, score := range scores {
		m.candidateScore.WithLabelValues(name).Set(score)
	}
}

// ObserveSession implements ports.SessionObserver.
func (m *SessionMetrics) ObserveSession(duration time.Duration, rated int) {
	m.sessionDuration.Observe(duration.Seconds())
	m.sessionsTotal.Inc()
	m.propositions.Set(float64(rated))
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is written to a temporary name and renamed into place.
func (m *SessionMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
