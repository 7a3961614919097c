package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Validation run metrics
	validateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schemaguard_validate_duration_seconds",
			Help:    "Duration of one validation run in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	validateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schemaguard_validate_total",
			Help: "Total number of validation runs",
		},
		[]string{"status"}, // pass or fail
	)

	findingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schemaguard_findings_total",
			Help: "Total number of findings reported",
		},
		[]string{"code"},
	)
)

func observeRun(r *Result) {
	validateDuration.Observe(r.Summary.Duration.Seconds())
	validateTotal.WithLabelValues(string(r.Summary.Status)).Inc()
	for code, n := range r.Summary.ByCode {
		findingsTotal.WithLabelValues(string(code)).Add(float64(n))
	}
}
