// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package selector

import (
	"math"
	"sort"

	"github.com/tomtom215/cinelex/internal/models"
)

// score reads a category score; a missing category is NaN.
func score(it models.ScoredItem, category string) float64 {
	if v, ok := it.Score(category); ok {
		return v
	}
	return math.NaN()
}

// rankIndices orders item indices by descending score on category. Equal
// scores keep input order; NaN and missing scores sort last.
func rankIndices(items []models.ScoredItem, category string) []int {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		sa, sb := score(items[idx[a]], category), score(items[idx[b]], category)
		if math.IsNaN(sb) {
			return !math.IsNaN(sa)
		}
		return sa > sb
	})
	return idx
}

// TopK returns the k highest-scoring items on category. k is clamped to
// [0, len(items)].
func TopK(items []models.ScoredItem, category string, k int) []models.ScoredItem {
	k = max(0, min(k, len(items)))
	return pick(items, rankIndices(items, category)[:k])
}

// TopThreshold returns every item scoring at least threshold on category,
// highest first.
func TopThreshold(items []models.ScoredItem, category string, threshold float64) []models.ScoredItem {
	var out []models.ScoredItem
	for _, i := range rankIndices(items, category) {
		if v := score(items[i], category); math.IsNaN(v) || v < threshold {
			break
		}
		out = append(out, items[i])
	}
	return out
}

// TopFraction returns the top ceil(fraction·n) items on category. fraction
// is clamped to [0, 1].
func TopFraction(items []models.ScoredItem, category string, fraction float64) []models.ScoredItem {
	fraction = math.Max(0, math.Min(1, fraction))
	k := int(math.Ceil(fraction * float64(len(items))))
	return TopK(items, category, k)
}
