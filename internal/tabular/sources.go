// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/cinelex/internal/models"
)

// ErrBadHeader is returned when a headed source does not start with the
// expected columns.
var ErrBadHeader = errors.New("unexpected header")

// Column positions in movie.metadata.tsv.
const (
	movieWikiID = iota
	movieFreebaseID
	movieName
	movieReleaseDate
	movieRevenue
	movieRuntime
	movieLanguages
	movieCountries
	movieGenres
)

// Column positions in character.metadata.tsv.
const (
	charWikiID = iota
	charFreebaseID
	charReleaseDate
	charName
	charActorDOB
	charActorGender
	charActorHeight
	charActorEthnicity
	charActorName
	charActorAge
	charMapID
	charCharacterID
	charActorID
)

// ReadMovies reads movie.metadata.tsv in source order.
func ReadMovies(path string) ([]models.RawMovie, error) {
	var out []models.RawMovie
	err := ScanFile(path, func(_ int, f []string) error {
		out = append(out, models.RawMovie{
			WikipediaID: field(f, movieWikiID),
			FreebaseID:  field(f, movieFreebaseID),
			Name:        field(f, movieName),
			ReleaseDate: field(f, movieReleaseDate),
			Revenue:     optFloat(field(f, movieRevenue)),
			Runtime:     optFloat(field(f, movieRuntime)),
			Languages:   field(f, movieLanguages),
			Countries:   field(f, movieCountries),
			Genres:      field(f, movieGenres),
		})
		return nil
	})
	return out, err
}

// ReadCharacters reads character.metadata.tsv in source order.
func ReadCharacters(path string) ([]models.RawCharacter, error) {
	var out []models.RawCharacter
	err := ScanFile(path, func(_ int, f []string) error {
		out = append(out, models.RawCharacter{
			CharacterRecord: models.CharacterRecord{
				WikipediaID:         field(f, charWikiID),
				FreebaseID:          field(f, charFreebaseID),
				CharacterName:       field(f, charName),
				ActorGender:         field(f, charActorGender),
				ActorHeight:         optFloat(field(f, charActorHeight)),
				ActorEthnicity:      field(f, charActorEthnicity),
				ActorName:           field(f, charActorName),
				ActorAge:            optFloat(field(f, charActorAge)),
				CharacterActorMapID: field(f, charMapID),
				CharacterID:         field(f, charCharacterID),
				ActorID:             field(f, charActorID),
			},
			ReleaseDate:    field(f, charReleaseDate),
			ActorBirthDate: field(f, charActorDOB),
		})
		return nil
	})
	return out, err
}

// ReadNameClusters reads name.clusters.txt.
func ReadNameClusters(path string) ([]models.NameCluster, error) {
	var out []models.NameCluster
	err := ScanFile(path, func(_ int, f []string) error {
		out = append(out, models.NameCluster{
			Name:                field(f, 0),
			CharacterActorMapID: field(f, 1),
		})
		return nil
	})
	return out, err
}

// ReadPlotSummaries reads plot_summaries.txt. Rows without text keep a nil
// Text so the cleaner can drop them.
func ReadPlotSummaries(path string) ([]models.PlotSummary, error) {
	var out []models.PlotSummary
	err := ScanFile(path, func(_ int, f []string) error {
		out = append(out, models.PlotSummary{
			MovieID: field(f, 0),
			Text:    optText(strings.Join(f[min(1, len(f)):], "\t")),
		})
		return nil
	})
	return out, err
}

// RatingsHeader is the header row of title.ratings.tsv.
var RatingsHeader = []string{"tconst", "averageRating", "numVotes"}

// ReadRatings reads title.ratings.tsv. Rows whose rating or vote count do not
// parse are skipped; the count of skipped rows is returned.
func ReadRatings(path string) ([]models.Rating, int, error) {
	var (
		out     []models.Rating
		skipped int
	)
	err := ScanFile(path, func(line int, f []string) error {
		if line == 1 {
			if len(f) < len(RatingsHeader) || f[0] != RatingsHeader[0] {
				return fmt.Errorf("%w: %q", ErrBadHeader, strings.Join(f, "\t"))
			}
			return nil
		}
		rating, err1 := strconv.ParseFloat(field(f, 1), 64)
		votes, err2 := strconv.ParseInt(field(f, 2), 10, 64)
		if err1 != nil || err2 != nil || field(f, 0) == "" {
			skipped++
			return nil
		}
		out = append(out, models.Rating{Tconst: f[0], AverageRating: rating, NumVotes: votes})
		return nil
	})
	return out, skipped, err
}

// ReadNames reads the personal-name list: the first column of a CSV file,
// skipping a leading "name" header when present.
func ReadNames(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	var out []string
	for first := true; ; first = false {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(rec) == 0 {
			continue
		}
		name := strings.TrimSpace(rec[0])
		if name == "" || (first && strings.EqualFold(name, "name")) {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}
