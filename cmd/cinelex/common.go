// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/tomtom215/cinelex/internal/assemble"
	"github.com/tomtom215/cinelex/internal/config"
	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/metrics"
	"github.com/tomtom215/cinelex/internal/wikidata"
)

// rootFlag is shared by every command that reads the corpus.
var rootFlag = cli.StringFlag{
	Name:  "root",
	Usage: "corpus directory (overrides data.root)",
}

// setup loads the configuration, initialises logging and returns a context
// carrying a fresh run ID. The returned func exports metrics and must be
// deferred.
func setup(c *cli.Context) (context.Context, *config.Config, func(), error) {
	cfg, err := config.Load(c.GlobalString(configFlag))
	if err != nil {
		return nil, nil, nil, err
	}
	if root := c.String(rootFlag.Name); root != "" {
		cfg.Data.Root = root
	}

	logging.Init(cfg.Logging.Logger())

	ctx, cancel := signalContext()
	ctx = logging.ContextWithNewRunID(ctx)
	logging.Ctx(ctx).Info().
		Str("command", c.Command.Name).
		Str("data_root", cfg.Data.Root).
		Msg("configuration loaded")

	finish := func() {
		cancel()
		if err := metrics.Export(cfg.Metrics.Textfile); err != nil {
			logging.Warn().Err(err).Msg("metrics export failed")
		}
	}
	return ctx, cfg, finish, nil
}

// newAssembler wires an Assembler from cfg around resolver, which may be
// nil when only Summaries is needed.
func newAssembler(cfg *config.Config, resolver assemble.CrosswalkResolver) (*assemble.Assembler, error) {
	a := assemble.New(resolver)
	a.Sources = cfg.Data.Sources()
	a.Clean = cfg.Clean.Options()
	a.Cache = cfg.Cache.SummaryCache()
	if cfg.Clean.StopWordsFile != "" {
		words, err := readWordList(cfg.Clean.StopWordsFile)
		if err != nil {
			return nil, err
		}
		a.StopWords = words
	}
	return a, nil
}

// newResolver picks the crosswalk source: an offline file when configured,
// otherwise the SPARQL client, behind the Badger cache when a cache
// directory is set.
func newResolver(cfg config.WikidataConfig) (wikidata.Resolver, func(), error) {
	noop := func() {}
	if cfg.CrosswalkFile != "" {
		return wikidata.FileResolver{Path: cfg.CrosswalkFile}, noop, nil
	}

	client := wikidata.NewClient(cfg.Client())
	if cfg.CacheDir == "" {
		return client, noop, nil
	}

	db, err := wikidata.OpenBadger(cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("close crosswalk cache")
		}
	}
	return wikidata.CachedResolver{
		Resolver: client,
		Store:    wikidata.NewBadgerStore(db, cfg.CacheTTL),
		Refresh:  cfg.Refresh,
	}, release, nil
}

// readWordList reads one word per line, skipping blanks and # comments.
func readWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	words := []string{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return words, nil
}

// createOutput creates path and its parent directory.
func createOutput(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
