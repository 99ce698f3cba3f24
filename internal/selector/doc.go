// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

/*
Package selector chooses how many top-scoring items to keep so that the kept
subset looks least like random noise.

For each candidate size k the top-k items by the target category are compared
against Draws random size-k baselines with a similarity Metric. The
per-baseline similarities are reduced with an aggregator and the k with the
lowest aggregated similarity wins. The full curve is returned alongside the
winning subset so callers can check the minimum is a real elbow.

	res, err := selector.TopOptimize(ctx, items, "ghost", selector.DefaultFearCategories, selector.Params{
	    Range:     selector.Range{Min: 10, Max: 500, Step: 10},
	    Draws:     20,
	    Seed:      42,
	    Metric:    selector.Cosine{},
	    Aggregate: "mean",
	})

Metrics:

  - Cosine: mean pairwise cosine similarity, in [0,1] for non-negative scores
  - NegEuclidean: negative mean distance between matched-index vectors
  - NegHotelling: negative two-sample Hotelling T² with a pooled covariance

All three read "larger is more similar", so minimizing always seeks the
subset least like its baselines.

Candidate sizes are evaluated in parallel. Baseline draw d always uses seed
Seed+d and every result is stored at its k's index, so the selected k does
not depend on scheduling.

TopK, TopThreshold and TopFraction are plain filters for callers that
already know their cut-off.
*/
package selector
