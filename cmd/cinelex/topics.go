// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/models"
	"github.com/tomtom215/cinelex/internal/tabular"
	"github.com/tomtom215/cinelex/internal/topics"
)

func makeTopicsCMD() cli.Command {
	return cli.Command{
		Name:  "topics",
		Usage: "Fits LDA topics on the cleaned plot summaries",
		Flags: []cli.Flag{
			rootFlag,
			cli.IntFlag{Name: "topics, k", Usage: "number of topics (overrides topics.topics)"},
			cli.IntFlag{Name: "top-words", Usage: "words shown per topic"},
			cli.IntFlag{Name: "top-docs", Usage: "movies shown per topic"},
		},
		Action: runTopics,
	}
}

func runTopics(c *cli.Context) error {
	ctx, cfg, finish, err := setup(c)
	if err != nil {
		return err
	}
	defer finish()

	if c.IsSet("topics") {
		cfg.Topics.Topics = c.Int("topics")
	}
	if c.IsSet("top-words") {
		cfg.Topics.TopWords = c.Int("top-words")
	}
	if c.IsSet("top-docs") {
		cfg.Topics.TopDocuments = c.Int("top-docs")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Summaries need no crosswalk.
	a, err := newAssembler(cfg, nil)
	if err != nil {
		return err
	}

	summaries, err := a.Summaries(ctx, cfg.Data.Root)
	if err != nil {
		return err
	}
	docs := make([]string, len(summaries))
	for i, s := range summaries {
		docs[i] = *s.Text
	}

	model, err := topics.Fit(ctx, docs, cfg.Topics.Model())
	if err != nil {
		return err
	}

	titles := movieTitles(filepath.Join(cfg.Data.Root, cfg.Data.Movies))
	return printTopics(c.App.Writer, model, summaries, titles, cfg.Topics.TopWords, cfg.Topics.TopDocuments)
}

// movieTitles maps Wikipedia IDs to titles. Topics still print without the
// metadata file, with IDs in place of titles.
func movieTitles(path string) map[string]string {
	movies, err := tabular.ReadMovies(path)
	if err != nil {
		logging.Warn().Err(err).Msg("movie titles unavailable")
		return nil
	}
	titles := make(map[string]string, len(movies))
	for _, m := range movies {
		if _, ok := titles[m.WikipediaID]; !ok {
			titles[m.WikipediaID] = m.Name
		}
	}
	return titles
}

func printTopics(w io.Writer, m *topics.Model, summaries []models.PlotSummary, titles map[string]string, nWords, nDocs int) error {
	for t, line := range m.Describe(nWords) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		top, err := m.TopDocuments(t, nDocs)
		if err != nil {
			return err
		}
		for _, d := range top {
			id := summaries[d.Doc].MovieID
			title, ok := titles[id]
			if !ok {
				title = id
			}
			if _, err := fmt.Fprintf(w, "  %.3f  %s\n", d.Weight, title); err != nil {
				return err
			}
		}
	}

	common, err := m.TopWordsAcrossTopics(nWords)
	if err != nil {
		return err
	}
	words := make([]string, len(common))
	for i, wc := range common {
		words[i] = wc.Word
	}
	_, err = fmt.Fprintf(w, "shared top words: %s\n", strings.Join(words, " "))
	return err
}
