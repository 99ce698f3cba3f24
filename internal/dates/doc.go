// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

// Package dates reduces the heterogeneous date encodings found in the corpus
// metadata (full date, year-month, bare year) to a release or birth year.
//
// Normalization is a pure per-value function. A value that cannot be reduced
// to a year is reported as absent, never as an error.
//
// The range filter compares the raw string against "1800" and "2023"
// lexicographically before any parsing. Every accepted layout starts with a
// four digit year, so the comparison acts as a cheap bound, with one quirk
// kept on purpose: a full date in 2023 ("2023-05-01") sorts after "2023" and
// is rejected while the bare year "2023" is accepted.
package dates
