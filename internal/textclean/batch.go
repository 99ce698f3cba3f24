// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package textclean

import (
	"context"

	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/metrics"
	"github.com/tomtom215/cinelex/internal/models"
)

// ctxCheckEvery is how many rows are cleaned between cancellation checks.
const ctxCheckEvery = 1024

// CleanSummaries drops rows without text, then cleans the rest in order.
// Every returned row has a non-nil Text.
func (c *Cleaner) CleanSummaries(ctx context.Context, rows []models.PlotSummary) ([]models.PlotSummary, error) {
	out := make([]models.PlotSummary, 0, len(rows))
	dropped := 0

	for i, row := range rows {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if row.Text == nil {
			dropped++
			continue
		}
		cleaned := c.Clean(*row.Text)
		out = append(out, models.PlotSummary{MovieID: row.MovieID, Text: &cleaned})
	}

	metrics.SummariesCleaned.Add(float64(len(out)))
	metrics.SourceRowsSkipped.WithLabelValues("plot_summaries", "missing_text").Add(float64(dropped))
	if c.lemma != nil {
		metrics.LemmaCacheHitRate.Set(c.lemma.Stats().HitRate() / 100)
	}

	logging.Ctx(ctx).Debug().
		Int("cleaned", len(out)).
		Int("dropped_missing", dropped).
		Msg("cleaned plot summaries")
	return out, nil
}
