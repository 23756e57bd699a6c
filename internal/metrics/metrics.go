// Package metrics holds the Prometheus metrics for categorization.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace prefixes every metric name.
	Namespace = "niche"

	OutcomeCategorized   = "categorized"
	OutcomeUncategorized = "uncategorized"
	OutcomeError         = "error"
)

// Metrics holds all Prometheus metrics for categorization.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	CategorizationsTotal     *prometheus.CounterVec
	CategoriesAssigned       prometheus.Histogram
	CategoryAssignmentsTotal *prometheus.CounterVec
	ReviewsTotal             *prometheus.CounterVec
	ScoringDuration          prometheus.Histogram
}

// NewMetrics creates and registers the metrics on reg, or on the default
// registerer when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		CategorizationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "categorizations_total",
				Help:      "Total number of profile categorizations by outcome",
			},
			[]string{"outcome"},
		),
		CategoriesAssigned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "categories_assigned",
				Help:      "Number of categories assigned per categorization",
				Buckets:   []float64{0, 1, 2},
			},
		),
		CategoryAssignmentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "category_assignments_total",
				Help:      "Total number of times each category was assigned",
			},
			[]string{"category"},
		),
		ReviewsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "reviews_total",
				Help:      "Total number of category reviews, by whether the categories changed",
			},
			[]string{"changed"},
		),
		ScoringDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "scoring_duration_seconds",
				Help:      "Time spent scoring one profile",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs to ~160ms
			},
		),
	}
}

// ObserveCategorization records one successful categorization.
func (m *Metrics) ObserveCategorization(categories []string, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeCategorized
	if len(categories) == 0 {
		outcome = OutcomeUncategorized
	}
	m.CategorizationsTotal.WithLabelValues(outcome).Inc()
	m.CategoriesAssigned.Observe(float64(len(categories)))
	for _, c := range categories {
		m.CategoryAssignmentsTotal.WithLabelValues(c).Inc()
	}
	m.ScoringDuration.Observe(elapsed.Seconds())
}

// ObserveError records a categorization that failed.
func (m *Metrics) ObserveError() {
	if m == nil {
		return
	}
	m.CategorizationsTotal.WithLabelValues(OutcomeError).Inc()
}

// ObserveReview records one category review.
func (m *Metrics) ObserveReview(changed bool) {
	if m == nil {
		return
	}
	m.ReviewsTotal.WithLabelValues(strconv.FormatBool(changed)).Inc()
}
