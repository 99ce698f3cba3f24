// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Source loading
	SourceRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelex_source_rows_loaded_total",
			Help: "Rows read from each source table",
		},
		[]string{"source"}, // movies, characters, name_clusters, plot_summaries, ratings, names
	)

	SourceRowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelex_source_rows_skipped_total",
			Help: "Rows dropped while loading or joining, by reason",
		},
		[]string{"source", "reason"}, // reason: malformed, missing_text, duplicate
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinelex_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
		},
		[]string{"stage"},
	)

	// Summary cleaning
	SummariesCleaned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinelex_summaries_cleaned_total",
			Help: "Plot summaries run through the text cleaner",
		},
	)

	SummaryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelex_summary_cache_lookups_total",
			Help: "Cleaned-summary cache lookups by result",
		},
		[]string{"result"}, // hit, miss, bypass, disabled
	)

	LemmaCacheHitRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinelex_lemma_cache_hit_ratio",
			Help: "Hit ratio of the lemma memo after the last cleaning run (0-1)",
		},
	)

	// Identifier crosswalk
	CrosswalkRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelex_crosswalk_requests_total",
			Help: "Knowledge-base crosswalk requests by outcome",
		},
		[]string{"source", "outcome"}, // source: remote, cache; outcome: success, failure, rejected
	)

	CrosswalkRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinelex_crosswalk_request_duration_seconds",
			Help:    "Duration of knowledge-base crosswalk requests",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	CrosswalkPairs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinelex_crosswalk_pairs",
			Help: "Identifier pairs returned by the last crosswalk resolution",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Subset selection
	OptimizerEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelex_optimizer_similarity_evaluations_total",
			Help: "Similarity evaluations between a top-k subset and a random baseline",
		},
		[]string{"metric"},
	)

	OptimizerRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinelex_optimizer_run_duration_seconds",
			Help:    "Duration of a subset-size search",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		},
		[]string{"mode"}, // single, multi
	)

	// Warehouse export
	StoreRowsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelex_store_rows_written_total",
			Help: "Rows written to the DuckDB analysis store",
		},
		[]string{"table"},
	)
)

// RecordStage observes the duration of a finished stage.
func RecordStage(stage string, start time.Time) {
	StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// RecordCrosswalk records one crosswalk resolution.
func RecordCrosswalk(source, outcome string, duration time.Duration) {
	CrosswalkRequests.WithLabelValues(source, outcome).Inc()
	if source == "remote" {
		CrosswalkRequestDuration.Observe(duration.Seconds())
	}
}

// RecordBreakerTransition updates the breaker gauges. States are the
// gobreaker numeric values.
func RecordBreakerTransition(name string, from, to fmt.Stringer, toValue int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(toValue))
	CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
}

// Export writes every registered metric to path in the Prometheus text
// format, for node_exporter's textfile collector. An empty path is a no-op.
func Export(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
