// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package models

// ScoredItem is an item with lexicon category scores. Categories are labels
// chosen by whoever produced the scores.
type ScoredItem struct {
	ID     string             `json:"id"`
	Name   string             `json:"name,omitempty"`
	Scores map[string]float64 `json:"scores"`
}

// Score returns the score for category and whether the item carries it.
func (s ScoredItem) Score(category string) (float64, bool) {
	v, ok := s.Scores[category]
	return v, ok
}

// Vector returns the item's scores in categories order. Missing categories
// read as 0.
func (s ScoredItem) Vector(categories []string) []float64 {
	out := make([]float64, len(categories))
	for i, c := range categories {
		out[i] = s.Scores[c]
	}
	return out
}
