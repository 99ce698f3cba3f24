// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

/*
Package cache provides a bounded, thread-safe LRU memo.

The text cleaner lemmatizes every surviving token of every plot summary. The
vocabulary is far smaller than the token stream, so lemma lookups are
memoized here instead of rerunning the morphological rules.

# Usage

	lemmas := cache.NewLRU[string](50000)
	base := lemmas.GetOrCompute("running", lemmatize)

	stats := lemmas.Stats()
	fmt.Printf("hit rate %.1f%%\n", stats.HitRate())
*/
package cache
