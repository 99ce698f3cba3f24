// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

// Package tabular reads and writes the corpus source files.
//
// The CMU corpus files are plain tab-separated text without quoting; plot
// summaries routinely contain double quotes, so a line is split on tabs and
// nothing else. Headerless files are read by fixed column position. The
// rating table is the only source with a header row. The personal-name list
// is a real CSV file and goes through encoding/csv.
//
// Unparseable numeric cells become nil. Missing files surface as errors
// wrapping os.ErrNotExist so callers can classify them.
package tabular
