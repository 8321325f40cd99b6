// Package metrics exposes Prometheus instrumentation for the
// transcription service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts finished transcription requests by source
	// (upload or url) and outcome (success or the failure kind).
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caplearn_requests_total",
		Help: "Finished transcription requests by source and outcome.",
	}, []string{"source", "outcome"})

	// StageDuration tracks wall-clock time spent per pipeline stage.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "caplearn_stage_duration_seconds",
		Help:    "Pipeline stage duration in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"stage"})

	// CleanupFailures counts temporary files that could not be deleted.
	CleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caplearn_cleanup_failures_total",
		Help: "Temporary files that could not be deleted.",
	})
)

// ObserveStage records one stage duration sample.
func ObserveStage(stage string, d time.Duration) {
	StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordRequest counts one finished request.
func RecordRequest(source, outcome string) {
	RequestsTotal.WithLabelValues(source, outcome).Inc()
}
