// Package metrics provides Prometheus metrics for ranking calls.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/spigell/fitrank/internal/scoring"
)

const namespace = "fitrank"

const (
	StatusOK       = "ok"
	StatusCanceled = "canceled"
	StatusError    = "error"
)

// Ranking implements ranking.Observer.
type Ranking struct {
	// Total counts ranking calls by status.
	Total *prometheus.CounterVec
	// Duration measures ranking call duration.
	Duration prometheus.Histogram
	// PoolSize observes the number of positions scored per call.
	PoolSize prometheus.Histogram
	// Matches observes the number of matches returned per call.
	Matches prometheus.Histogram
	// Tiers counts returned matches by recommendation tier.
	Tiers *prometheus.CounterVec
}

// NewRanking registers the ranking metrics on reg. A nil reg uses the default registerer.
func NewRanking(reg prometheus.Registerer) *Ranking {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Ranking{
		Total: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rank_total",
				Help:      "Total number of ranking calls",
			},
			[]string{"status"},
		),
		Duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rank_duration_seconds",
				Help:      "Duration of ranking calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		PoolSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rank_pool_size",
				Help:      "Distribution of position pool sizes",
				Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
			},
		),
		Matches: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rank_matches",
				Help:      "Distribution of returned match counts",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 500},
			},
		),
		Tiers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "matches_total",
				Help:      "Total number of returned matches by recommendation",
			},
			[]string{"recommendation"},
		),
	}
}

// ObserveRanking records one ranking call.
func (m *Ranking) ObserveRanking(took time.Duration, pool, matches int, err error) {
	status := StatusOK
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = StatusCanceled
	case err != nil:
		status = StatusError
	}

	m.Total.WithLabelValues(status).Inc()
	m.Duration.Observe(took.Seconds())
	m.PoolSize.Observe(float64(pool))
	if err == nil {
		m.Matches.Observe(float64(matches))
	}
}

// RecordMatches counts the returned matches per tier.
func (m *Ranking) RecordMatches(matches []scoring.MatchScore) {
	for _, match := range matches {
		m.Tiers.WithLabelValues(string(match.Recommendation)).Inc()
	}
}
