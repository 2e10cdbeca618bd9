package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// groundwater balance pipeline.
type Metrics struct {
	AssessmentsTotal   *prometheus.CounterVec // labels: outcome={success,unresolvable_location,missing_reference,external_service,precondition}
	AssessmentDuration prometheus.Histogram
	StageErrors        *prometheus.CounterVec // labels: stage={boundary,area,lithology,terrain,registry,ingres,calculator}

	// Dataset reconciliation metrics.
	FuzzyFallbacks   *prometheus.CounterVec // labels: dataset={area,registry}
	ReferenceRecords *prometheus.GaugeVec   // labels: dataset={taluka_layer,district_layer,area_table}

	// External call metrics.
	ExternalAPIDuration *prometheus.HistogramVec // labels: service={terrain,ingres}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jalniti",
			Name:      "assessments_total",
			Help:      "Groundwater balance assessments by outcome.",
		}, []string{"outcome"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jalniti",
			Name:      "assessment_duration_seconds",
			Help:      "End-to-end duration of one assessment pipeline run.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		StageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jalniti",
			Name:      "stage_errors_total",
			Help:      "Terminal pipeline failures by stage.",
		}, []string{"stage"}),
		FuzzyFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jalniti",
			Name:      "fuzzy_fallback_total",
			Help:      "Name lookups that missed the exact match and used fuzzy reconciliation.",
		}, []string{"dataset"}),
		ReferenceRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "jalniti",
			Name:      "reference_records",
			Help:      "Records loaded per read-only reference dataset at start-up.",
		}, []string{"dataset"}),
		ExternalAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jalniti",
			Name:      "external_api_duration_seconds",
			Help:      "Outbound HTTP request duration by service.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"service"}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentDuration,
		m.StageErrors,
		m.FuzzyFallbacks,
		m.ReferenceRecords,
		m.ExternalAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "jalniti", Name: "assessments_total"}, []string{"outcome"}),
		AssessmentDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "jalniti", Name: "assessment_duration_seconds"}),
		StageErrors:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "jalniti", Name: "stage_errors_total"}, []string{"stage"}),
		FuzzyFallbacks:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "jalniti", Name: "fuzzy_fallback_total"}, []string{"dataset"}),
		ReferenceRecords:    prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "jalniti", Name: "reference_records"}, []string{"dataset"}),
		ExternalAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "jalniti", Name: "external_api_duration_seconds"}, []string{"service"}),
	}
}
