// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package assemble

import (
	"strconv"
	"strings"

	"github.com/tomtom215/cinelex/internal/models"
)

// joinedMovie is a raw movie row with its cleaned summary attached.
type joinedMovie struct {
	models.RawMovie
	Summary *string
}

// joinSummaries left-joins movies with summaries on the Wikipedia movie ID.
// A movie with several summaries yields one row per summary, in summary
// order; a movie with none yields one row with a nil Summary.
func joinSummaries(movies []models.RawMovie, summaries []models.PlotSummary) []joinedMovie {
	byID := make(map[string][]*string, len(summaries))
	for _, s := range summaries {
		byID[s.MovieID] = append(byID[s.MovieID], s.Text)
	}

	out := make([]joinedMovie, 0, len(movies))
	for _, m := range movies {
		texts, ok := byID[m.WikipediaID]
		if !ok {
			out = append(out, joinedMovie{RawMovie: m})
			continue
		}
		for _, t := range texts {
			out = append(out, joinedMovie{RawMovie: m, Summary: t})
		}
	}
	return out
}

// dedupe drops rows identical to an earlier row on name, raw release date,
// revenue, raw languages, raw genres, raw countries, runtime and summary.
// Wikipedia and Freebase IDs are not part of the key.
func dedupe(rows []joinedMovie) []joinedMovie {
	seen := make(map[string]struct{}, len(rows))
	out := make([]joinedMovie, 0, len(rows))
	var b strings.Builder
	for _, r := range rows {
		b.Reset()
		writeKey(&b, r)
		k := b.String()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Unit separator; absent values get a marker no TSV field can hold.
const (
	keySep    = "\x1f"
	keyAbsent = "\x00"
)

func writeKey(b *strings.Builder, r joinedMovie) {
	b.WriteString(r.Name)
	b.WriteString(keySep)
	b.WriteString(r.ReleaseDate)
	b.WriteString(keySep)
	writeFloatKey(b, r.Revenue)
	b.WriteString(keySep)
	b.WriteString(r.Languages)
	b.WriteString(keySep)
	b.WriteString(r.Genres)
	b.WriteString(keySep)
	b.WriteString(r.Countries)
	b.WriteString(keySep)
	writeFloatKey(b, r.Runtime)
	b.WriteString(keySep)
	if r.Summary == nil {
		b.WriteString(keyAbsent)
	} else {
		b.WriteString(*r.Summary)
	}
}

func writeFloatKey(b *strings.Builder, v *float64) {
	if v == nil {
		b.WriteString(keyAbsent)
		return
	}
	b.WriteString(strconv.FormatFloat(*v, 'g', -1, 64))
}
