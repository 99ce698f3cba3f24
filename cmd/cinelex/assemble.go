// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package main

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/models"
	"github.com/tomtom215/cinelex/internal/store"
	"github.com/tomtom215/cinelex/internal/tabular"
)

func makeAssembleCMD() cli.Command {
	return cli.Command{
		Name:    "assemble",
		Aliases: []string{"a"},
		Usage:   "Builds the movie, character and name-cluster tables",
		Flags: []cli.Flag{
			rootFlag,
			cli.StringFlag{Name: "output, o", Usage: "directory for movies.tsv (overrides data.output)"},
			cli.StringFlag{Name: "duckdb", Usage: "DuckDB file to write the tables to (overrides store.path)"},
			cli.BoolFlag{Name: "force", Usage: "recompute cleaned summaries even when cached"},
			cli.BoolFlag{Name: "no-save", Usage: "do not write recomputed summaries to the cache"},
			cli.BoolFlag{Name: "refresh-crosswalk", Usage: "ignore the cached crosswalk"},
		},
		Action: runAssemble,
	}
}

func runAssemble(c *cli.Context) error {
	ctx, cfg, finish, err := setup(c)
	if err != nil {
		return err
	}
	defer finish()

	if v := c.String("output"); v != "" {
		cfg.Data.Output = v
	}
	if v := c.String("duckdb"); v != "" {
		cfg.Store.Path = v
	}
	cfg.Cache.Force = cfg.Cache.Force || c.Bool("force")
	cfg.Cache.NoSave = cfg.Cache.NoSave || c.Bool("no-save")
	cfg.Wikidata.Refresh = cfg.Wikidata.Refresh || c.Bool("refresh-crosswalk")

	resolver, release, err := newResolver(cfg.Wikidata)
	if err != nil {
		return err
	}
	defer release()

	a, err := newAssembler(cfg, resolver)
	if err != nil {
		return err
	}

	tables, err := a.Assemble(ctx, cfg.Data.Root)
	if err != nil {
		return err
	}

	if cfg.Data.Output == "" && !cfg.Store.Enabled() {
		logging.Ctx(ctx).Warn().Msg("no output directory or store configured; tables were not saved")
		return nil
	}
	if cfg.Data.Output != "" {
		if err := writeMoviesTSV(filepath.Join(cfg.Data.Output, "movies.tsv"), tables.Movies); err != nil {
			return err
		}
	}
	if cfg.Store.Enabled() {
		if err := writeStore(ctx, cfg.Store.Store(), tables); err != nil {
			return err
		}
	}
	return nil
}

func writeMoviesTSV(path string, movies []models.MovieRecord) (err error) {
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := tabular.WriteMovies(w, movies); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logging.Info().Str("path", path).Int("movies", len(movies)).Msg("wrote movies")
	return nil
}

func writeStore(ctx context.Context, cfg store.Config, tables models.Tables) error {
	s, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logging.Warn().Err(err).Msg("close store")
		}
	}()
	return s.WriteTables(ctx, tables, logging.RunIDFromContext(ctx))
}
