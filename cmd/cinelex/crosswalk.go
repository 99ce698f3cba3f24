// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/tomtom215/cinelex/internal/assemble"
	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/wikidata"
)

func makeCrosswalkCMD() cli.Command {
	return cli.Command{
		Name:  "crosswalk",
		Usage: "Fetches the IMDb/Freebase crosswalk into a TSV file usable as wikidata.crosswalk_file",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "output, o", Usage: "destination TSV file"},
			cli.BoolFlag{Name: "refresh", Usage: "ignore the cached crosswalk"},
		},
		Action: runCrosswalk,
	}
}

func runCrosswalk(c *cli.Context) (err error) {
	out := c.String("output")
	if out == "" {
		return errors.New("--output is required")
	}

	ctx, cfg, finish, err := setup(c)
	if err != nil {
		return err
	}
	defer finish()

	// Always query: reading the file being written makes no sense.
	cfg.Wikidata.CrosswalkFile = ""
	cfg.Wikidata.Refresh = cfg.Wikidata.Refresh || c.Bool("refresh")

	resolver, release, err := newResolver(cfg.Wikidata)
	if err != nil {
		return err
	}
	defer release()

	pairs, err := resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	pairs = assemble.DedupeCrosswalk(pairs)

	f, err := createOutput(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", out, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := wikidata.WriteCrosswalk(w, pairs); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logging.Ctx(ctx).Info().Str("path", out).Int("pairs", len(pairs)).Msg("wrote crosswalk")
	return nil
}
