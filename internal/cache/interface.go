// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package cache

// Memo is the lookup surface the text pipeline depends on. LRU implements it;
// tests substitute a plain map when eviction is irrelevant.
type Memo[V any] interface {
	// GetOrCompute returns the memoized value for key, computing it on a miss.
	GetOrCompute(key string, fn func(string) V) V

	// Stats returns hit/miss counters.
	Stats() Stats
}

// Stats holds memo statistics.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int
}

// HitRate returns the hit rate as a percentage, 0 when nothing was looked up.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

var _ Memo[string] = (*LRU[string])(nil)
