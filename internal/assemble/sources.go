// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package assemble

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrMissingSource is returned when a required source file does not exist.
// It is joined with the underlying os.ErrNotExist.
var ErrMissingSource = errors.New("missing source file")

// Sources names the source files relative to the source root.
type Sources struct {
	Movies        string `koanf:"movies" validate:"required"`
	Characters    string `koanf:"characters" validate:"required"`
	NameClusters  string `koanf:"name_clusters" validate:"required"`
	PlotSummaries string `koanf:"plot_summaries" validate:"required"`
	Ratings       string `koanf:"ratings" validate:"required"`
	Names         string `koanf:"names" validate:"required"`
}

// DefaultSources returns the CMU Movie Summary Corpus file names plus the
// IMDb ratings dump and the personal-name list.
func DefaultSources() Sources {
	return Sources{
		Movies:        "movie.metadata.tsv",
		Characters:    "character.metadata.tsv",
		NameClusters:  "name.clusters.txt",
		PlotSummaries: "plot_summaries.txt",
		Ratings:       "title.ratings.tsv",
		Names:         "names.csv",
	}
}

// paths resolves every source against root.
type paths struct {
	movies, characters, nameClusters, plotSummaries, ratings, names string
}

func (s Sources) resolve(root string) paths {
	return paths{
		movies:        filepath.Join(root, s.Movies),
		characters:    filepath.Join(root, s.Characters),
		nameClusters:  filepath.Join(root, s.NameClusters),
		plotSummaries: filepath.Join(root, s.PlotSummaries),
		ratings:       filepath.Join(root, s.Ratings),
		names:         filepath.Join(root, s.Names),
	}
}

// check verifies that every required file exists before any work starts.
func (p paths) check(needNames bool) error {
	required := []string{p.movies, p.characters, p.nameClusters, p.plotSummaries, p.ratings}
	if needNames {
		required = append(required, p.names)
	}
	return requireFiles(required...)
}

// checkSummaries verifies only the inputs of the cleaning stage.
func (p paths) checkSummaries(needNames bool) error {
	if needNames {
		return requireFiles(p.plotSummaries, p.names)
	}
	return requireFiles(p.plotSummaries)
}

func requireFiles(files ...string) error {
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			return sourceError(path, err)
		}
	}
	return nil
}

// sourceError classifies a load error: not-exist errors become
// ErrMissingSource, anything else is wrapped with the path.
func sourceError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrMissingSource, path, err)
	}
	return fmt.Errorf("load %s: %w", path, err)
}
