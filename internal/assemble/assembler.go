// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package assemble

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/cinelex/internal/dates"
	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/metrics"
	"github.com/tomtom215/cinelex/internal/models"
	"github.com/tomtom215/cinelex/internal/tabular"
	"github.com/tomtom215/cinelex/internal/textclean"
)

// ErrNoCrosswalk is returned when Assemble runs without a crosswalk resolver.
var ErrNoCrosswalk = errors.New("no crosswalk resolver configured")

// CrosswalkResolver yields IMDb/Freebase ID pairs.
// wikidata.Client, wikidata.CachedResolver and wikidata.FileResolver
// satisfy it.
type CrosswalkResolver interface {
	Resolve(ctx context.Context) ([]models.Crosswalk, error)
}

// Assembler builds the movie, character and name-cluster tables.
type Assembler struct {
	Sources   Sources
	Clean     textclean.Options
	Cache     textclean.SummaryCache
	Crosswalk CrosswalkResolver

	// StopWords overrides the embedded English stop-word list when non-nil.
	StopWords []string
}

// New returns an Assembler with the default source names, every cleaning
// step except stemming, and the cache disabled.
func New(resolver CrosswalkResolver) *Assembler {
	return &Assembler{
		Sources:   DefaultSources(),
		Clean:     textclean.AllOptions(),
		Crosswalk: resolver,
	}
}

// Assemble reads the sources under root and returns the assembled tables.
func (a *Assembler) Assemble(ctx context.Context, root string) (models.Tables, error) {
	if a.Crosswalk == nil {
		return models.Tables{}, ErrNoCrosswalk
	}
	p := a.Sources.resolve(root)
	if err := p.check(a.Clean.Names); err != nil {
		return models.Tables{}, err
	}
	log := logging.Ctx(ctx)

	done := stage(ctx, "load")
	rawMovies, err := tabular.ReadMovies(p.movies)
	if err != nil {
		return models.Tables{}, sourceError(p.movies, err)
	}
	rawChars, err := tabular.ReadCharacters(p.characters)
	if err != nil {
		return models.Tables{}, sourceError(p.characters, err)
	}
	clusters, err := tabular.ReadNameClusters(p.nameClusters)
	if err != nil {
		return models.Tables{}, sourceError(p.nameClusters, err)
	}
	metrics.SourceRowsLoaded.WithLabelValues("movies").Add(float64(len(rawMovies)))
	metrics.SourceRowsLoaded.WithLabelValues("characters").Add(float64(len(rawChars)))
	metrics.SourceRowsLoaded.WithLabelValues("name_clusters").Add(float64(len(clusters)))
	done()

	done = stage(ctx, "clean_summaries")
	summaries, err := a.Cache.Load(ctx, p.plotSummaries, func(ctx context.Context) ([]models.PlotSummary, error) {
		return a.cleanSummaries(ctx, p)
	})
	if err != nil {
		return models.Tables{}, err
	}
	done()

	done = stage(ctx, "join")
	joined := joinSummaries(rawMovies, summaries)
	done()

	done = stage(ctx, "dedupe")
	deduped := dedupe(joined)
	metrics.SourceRowsSkipped.WithLabelValues("movies", "duplicate").Add(float64(len(joined) - len(deduped)))
	done()

	done = stage(ctx, "normalize")
	movies := make([]models.MovieRecord, len(deduped))
	for i, m := range deduped {
		movies[i] = normalizeMovie(m)
	}
	characters := make([]models.CharacterRecord, len(rawChars))
	for i, c := range rawChars {
		characters[i] = normalizeCharacter(c)
	}
	done()

	done = stage(ctx, "ratings")
	if err := a.attachRatings(ctx, p.ratings, movies); err != nil {
		return models.Tables{}, err
	}
	done()

	log.Info().
		Int("movies", len(movies)).
		Int("characters", len(characters)).
		Int("name_clusters", len(clusters)).
		Int("duplicates_dropped", len(joined)-len(deduped)).
		Msg("assembly complete")

	return models.Tables{
		Movies:       movies,
		Characters:   characters,
		NameClusters: clusters,
	}, nil
}

// Summaries returns the cleaned plot summaries under root through the
// summary cache. It reads neither the metadata tables nor the crosswalk.
func (a *Assembler) Summaries(ctx context.Context, root string) ([]models.PlotSummary, error) {
	p := a.Sources.resolve(root)
	if err := p.checkSummaries(a.Clean.Names); err != nil {
		return nil, err
	}
	done := stage(ctx, "clean_summaries")
	defer done()
	return a.Cache.Load(ctx, p.plotSummaries, func(ctx context.Context) ([]models.PlotSummary, error) {
		return a.cleanSummaries(ctx, p)
	})
}

// cleanSummaries runs on a summary-cache miss: read the raw summaries, build
// the cleaner, clean every row.
func (a *Assembler) cleanSummaries(ctx context.Context, p paths) ([]models.PlotSummary, error) {
	raw, err := tabular.ReadPlotSummaries(p.plotSummaries)
	if err != nil {
		return nil, sourceError(p.plotSummaries, err)
	}
	metrics.SourceRowsLoaded.WithLabelValues("plot_summaries").Add(float64(len(raw)))

	lex := textclean.Lexicon{StopWords: a.StopWords}
	if a.Clean.Names {
		names, err := tabular.ReadNames(p.names)
		if err != nil {
			return nil, sourceError(p.names, err)
		}
		lex.Names = names
	}
	cleaner, err := textclean.New(a.Clean, lex)
	if err != nil {
		return nil, err
	}
	return cleaner.CleanSummaries(ctx, raw)
}

// attachRatings fills Rating and Votes on movies whose Freebase ID resolves
// through the crosswalk to a rated IMDb title.
func (a *Assembler) attachRatings(ctx context.Context, path string, movies []models.MovieRecord) error {
	ratings, skipped, err := tabular.ReadRatings(path)
	if err != nil {
		return sourceError(path, err)
	}
	metrics.SourceRowsLoaded.WithLabelValues("ratings").Add(float64(len(ratings)))
	metrics.SourceRowsSkipped.WithLabelValues("ratings", "malformed").Add(float64(skipped))

	pairs, err := a.Crosswalk.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("resolve crosswalk: %w", err)
	}
	pairs = DedupeCrosswalk(pairs)

	byTconst := make(map[string]models.Rating, len(ratings))
	for _, r := range ratings {
		if _, ok := byTconst[r.Tconst]; !ok {
			byTconst[r.Tconst] = r
		}
	}
	tconstByFreebase := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if p.FreebaseID != "" {
			tconstByFreebase[p.FreebaseID] = p.Tconst
		}
	}

	attached := 0
	for i := range movies {
		fb := movies[i].FreebaseID
		if fb == "" {
			continue
		}
		tconst, ok := tconstByFreebase[fb]
		if !ok {
			continue
		}
		r, ok := byTconst[tconst]
		if !ok {
			continue
		}
		rating, votes := r.AverageRating, r.NumVotes
		movies[i].Rating = &rating
		movies[i].Votes = &votes
		attached++
	}

	logging.Ctx(ctx).Debug().
		Int("ratings", len(ratings)).
		Int("crosswalk_pairs", len(pairs)).
		Int("attached", attached).
		Msg("attached ratings")
	return nil
}

// DedupeCrosswalk keeps the first pair per IMDb ID, then the first pair per
// Freebase ID. Pairs with an empty Freebase ID share one key, so at most one
// of them survives.
func DedupeCrosswalk(pairs []models.Crosswalk) []models.Crosswalk {
	seenT := make(map[string]struct{}, len(pairs))
	byT := make([]models.Crosswalk, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := seenT[p.Tconst]; ok {
			continue
		}
		seenT[p.Tconst] = struct{}{}
		byT = append(byT, p)
	}

	seenF := make(map[string]struct{}, len(byT))
	out := byT[:0]
	for _, p := range byT {
		if _, ok := seenF[p.FreebaseID]; ok {
			continue
		}
		seenF[p.FreebaseID] = struct{}{}
		out = append(out, p)
	}
	return out
}

func stage(ctx context.Context, name string) func() {
	start := time.Now()
	logDone := logging.Stage(ctx, name)
	return func() {
		logDone()
		metrics.RecordStage(name, start)
	}
}

func normalizeMovie(m joinedMovie) models.MovieRecord {
	return models.MovieRecord{
		WikipediaID: m.WikipediaID,
		FreebaseID:  m.FreebaseID,
		Name:        m.Name,
		ReleaseYear: dates.YearPtr(m.ReleaseDate),
		Revenue:     m.Revenue,
		Runtime:     m.Runtime,
		Languages:   MappingValues(m.Languages),
		Countries:   MappingValues(m.Countries),
		Genres:      MappingValues(m.Genres),
		Summary:     m.Summary,
	}
}

func normalizeCharacter(c models.RawCharacter) models.CharacterRecord {
	rec := c.CharacterRecord
	rec.ReleaseYear = dates.YearPtr(c.ReleaseDate)
	rec.ActorBirthYear = dates.YearPtr(c.ActorBirthDate)
	return rec
}
