// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package dates

import "time"

const (
	// LowerBound and UpperBound are compared against the unparsed value.
	LowerBound = "1800"
	UpperBound = "2023"

	// Blank is the placeholder the loaders use for an empty cell.
	Blank = " "
	// MissingToken is the textual missing-value marker found in exported tables.
	MissingToken = "nan"
)

// layouts are tried in order: full date, year-month, year. The single-digit
// month and day verbs also accept zero-padded input.
var layouts = []string{"2006-1-2", "2006-1", "2006"}

// NormalizeYear reduces a date-like value to its year.
// The boolean is false when the value is out of range, missing or unparseable.
func NormalizeYear(value string) (int, bool) {
	if value == "" {
		value = Blank
	}
	if value > UpperBound || value < LowerBound || value == Blank || value == MissingToken {
		return 0, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}

// NormalizeColumn applies NormalizeYear to every value independently.
// The result has the same length as values; absent years are nil.
func NormalizeColumn(values []string) []*int {
	out := make([]*int, len(values))
	for i, v := range values {
		if year, ok := NormalizeYear(v); ok {
			y := year
			out[i] = &y
		}
	}
	return out
}

// YearPtr is NormalizeYear in the nullable form stored on records.
func YearPtr(value string) *int {
	year, ok := NormalizeYear(value)
	if !ok {
		return nil
	}
	return &year
}
