// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package selector

// DefaultFearCategories is an example category set for fear-lexicon scores.
// Nothing in this package reads it implicitly.
var DefaultFearCategories = []string{
	"ghost", "monster", "death", "darkness", "blood",
	"isolation", "pursuit", "madness", "supernatural", "violence",
}
