// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package wikidata

import (
	"context"
	"fmt"
	"io"

	"github.com/tomtom215/cinelex/internal/models"
	"github.com/tomtom215/cinelex/internal/tabular"
)

// crosswalkHeader is the header of an exported crosswalk file.
var crosswalkHeader = []string{"tconst", "freebase_id"}

// FileResolver reads a crosswalk from a TSV file written by WriteCrosswalk,
// for offline runs.
type FileResolver struct {
	Path string
}

// Resolve implements Resolver.
func (f FileResolver) Resolve(_ context.Context) ([]models.Crosswalk, error) {
	var out []models.Crosswalk
	err := tabular.ScanFile(f.Path, func(line int, fields []string) error {
		if line == 1 && fields[0] == crosswalkHeader[0] {
			return nil
		}
		pair := models.Crosswalk{Tconst: fields[0]}
		if len(fields) > 1 {
			pair.FreebaseID = fields[1]
		}
		out = append(out, pair)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read crosswalk file: %w", err)
	}
	return out, nil
}

// WriteCrosswalk writes pairs as a headed TSV readable by FileResolver.
func WriteCrosswalk(w io.Writer, pairs []models.Crosswalk) error {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p.Tconst, p.FreebaseID}
	}
	return tabular.WriteTSV(w, crosswalkHeader, rows)
}
