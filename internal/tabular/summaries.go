// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/cinelex/internal/models"
)

// SummaryHeader is the header row of the cleaned-summary cache file.
var SummaryHeader = []string{"movie_id", "summary"}

// ReadCleanSummaries parses a cleaned-summary table. Unlike the raw source,
// an empty summary cell is kept as an empty string.
func ReadCleanSummaries(r io.Reader) ([]models.PlotSummary, error) {
	var out []models.PlotSummary
	err := ScanTSV(r, func(line int, f []string) error {
		if line == 1 {
			if strings.Join(f, "\t") != strings.Join(SummaryHeader, "\t") {
				return fmt.Errorf("%w: %q", ErrBadHeader, strings.Join(f, "\t"))
			}
			return nil
		}
		text := field(f, 1)
		out = append(out, models.PlotSummary{MovieID: f[0], Text: &text})
		return nil
	})
	return out, err
}

// WriteCleanSummaries writes rows with SummaryHeader. Nil texts are written
// as empty cells.
func WriteCleanSummaries(w io.Writer, rows []models.PlotSummary) error {
	out := make([][]string, len(rows))
	for i, s := range rows {
		text := ""
		if s.Text != nil {
			text = sanitize(*s.Text)
		}
		out[i] = []string{sanitize(s.MovieID), text}
	}
	return WriteTSV(w, SummaryHeader, out)
}
