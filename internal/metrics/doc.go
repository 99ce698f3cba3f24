// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

/*
Package metrics provides Prometheus instrumentation for pipeline runs.

cinelex is a batch tool, so nothing serves /metrics. Collectors are
registered with the default registry and, when metrics.textfile is set, the
CLI writes them once at the end of a run with Export for node_exporter's
textfile collector.

# Available Metrics

Loading and stages:
  - cinelex_source_rows_loaded_total{source}
  - cinelex_source_rows_skipped_total{source,reason}
  - cinelex_stage_duration_seconds{stage}

Cleaning:
  - cinelex_summaries_cleaned_total
  - cinelex_summary_cache_lookups_total{result}
  - cinelex_lemma_cache_hit_ratio

Crosswalk:
  - cinelex_crosswalk_requests_total{source,outcome}
  - cinelex_crosswalk_request_duration_seconds
  - cinelex_crosswalk_pairs
  - circuit_breaker_state{name}, circuit_breaker_state_transitions_total

Selection and export:
  - cinelex_optimizer_similarity_evaluations_total{metric}
  - cinelex_optimizer_run_duration_seconds{mode}
  - cinelex_store_rows_written_total{table}
*/
package metrics
