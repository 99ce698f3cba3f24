// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

// Package topics fits a Latent Dirichlet Allocation model over cleaned plot
// summaries and answers questions about it: the heaviest words of a topic,
// the documents most associated with a topic, and the words that recur
// among the tops of many topics.
//
// LDA starts from a random state, so two fits over the same corpus can
// order or split topics differently. Callers compare shapes, not indices.
package topics
