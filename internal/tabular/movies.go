// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package tabular

import (
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinelex/internal/models"
)

// MovieHeader is the header row written by WriteMovies.
var MovieHeader = []string{
	"wikipedia_id", "freebase_id", "name", "release_year", "revenue", "runtime",
	"languages", "countries", "genres", "summary", "rating", "votes",
}

// WriteMovies writes the movie table as TSV. List columns are JSON arrays and
// absent values are empty cells, so two runs over the same inputs produce the
// same bytes.
func WriteMovies(w io.Writer, movies []models.MovieRecord) error {
	rows := make([][]string, len(movies))
	for i := range movies {
		m := &movies[i]
		langs, err := jsonList(m.Languages)
		if err != nil {
			return err
		}
		countries, err := jsonList(m.Countries)
		if err != nil {
			return err
		}
		genres, err := jsonList(m.Genres)
		if err != nil {
			return err
		}
		rows[i] = []string{
			sanitize(m.WikipediaID),
			sanitize(m.FreebaseID),
			sanitize(m.Name),
			fmtInt(m.ReleaseYear),
			fmtFloat(m.Revenue),
			fmtFloat(m.Runtime),
			langs,
			countries,
			genres,
			fmtText(m.Summary),
			fmtFloat(m.Rating),
			fmtInt64(m.Votes),
		}
	}
	return WriteTSV(w, MovieHeader, rows)
}

func jsonList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func fmtInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func fmtInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func fmtFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func fmtText(v *string) string {
	if v == nil {
		return ""
	}
	return sanitize(*v)
}
