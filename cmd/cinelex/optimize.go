// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli"

	"github.com/tomtom215/cinelex/internal/config"
	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/models"
	"github.com/tomtom215/cinelex/internal/selector"
	"github.com/tomtom215/cinelex/internal/store"
	"github.com/tomtom215/cinelex/internal/tabular"
)

func makeOptimizeCMD() cli.Command {
	return cli.Command{
		Name:    "optimize",
		Aliases: []string{"opt"},
		Usage:   "Searches the top-k subset size least similar to random baselines",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "input, i", Usage: "scored-items TSV (id, optional name, one column per category)"},
			cli.StringFlag{Name: "table", Usage: "scored-items table in the DuckDB store"},
			cli.StringFlag{Name: "id-column", Value: "id", Usage: "ID column of --table"},
			cli.StringFlag{Name: "name-column", Usage: "optional name column of --table"},
			cli.StringFlag{Name: "categories", Usage: "comma-separated categories; defaults to the --input header"},
			cli.StringFlag{Name: "target, t", Usage: "category to optimize; empty optimizes every category"},
			cli.IntFlag{Name: "min", Usage: "smallest subset size"},
			cli.IntFlag{Name: "max", Usage: "largest subset size"},
			cli.IntFlag{Name: "step", Usage: "subset size step"},
			cli.IntFlag{Name: "draws", Usage: "random baselines per size"},
			cli.Int64Flag{Name: "seed", Usage: "random seed"},
			cli.StringFlag{Name: "metric", Usage: "cosine, euclidean or hotelling"},
			cli.BoolFlag{Name: "json", Usage: "print the full result as JSON"},
		},
		Action: runOptimize,
	}
}

func runOptimize(c *cli.Context) error {
	ctx, cfg, finish, err := setup(c)
	if err != nil {
		return err
	}
	defer finish()

	applyOptimizeFlags(c, &cfg.Optimize)
	items, header, err := loadScoredItems(ctx, c, cfg)
	if err != nil {
		return err
	}
	if err := resolveCategories(&cfg.Optimize, header); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Int("items", len(items)).Strs("categories", cfg.Optimize.Categories).Msg("scored items loaded")

	p := cfg.Optimize.Params()
	if cfg.Optimize.Target != "" {
		res, err := selector.TopOptimize(ctx, items, cfg.Optimize.Target, cfg.Optimize.Categories, p)
		if err != nil {
			return err
		}
		return printResult(c.App.Writer, c.Bool("json"), res, res.K, res.Curve)
	}

	res, err := selector.TopOptimizeAll(ctx, items, cfg.Optimize.Categories, p)
	if err != nil {
		return err
	}
	return printResult(c.App.Writer, c.Bool("json"), res, res.K, res.Curve)
}

func applyOptimizeFlags(c *cli.Context, o *config.OptimizeConfig) {
	if c.IsSet("categories") {
		o.Categories = splitList(c.String("categories"))
		o.CategoriesSet = true
	}
	if c.IsSet("target") {
		o.Target = c.String("target")
	}
	if c.IsSet("min") {
		o.Min = c.Int("min")
	}
	if c.IsSet("max") {
		o.Max = c.Int("max")
	}
	if c.IsSet("step") {
		o.Step = c.Int("step")
	}
	if c.IsSet("draws") {
		o.Draws = c.Int("draws")
	}
	if c.IsSet("seed") {
		o.Seed = c.Int64("seed")
	}
	if c.IsSet("metric") {
		o.Metric = c.String("metric")
	}
}

// loadScoredItems reads the items named by --input or --table. For --input it
// also returns the category columns of the header; a table has no header
// to offer, so its categories always come from configuration.
func loadScoredItems(ctx context.Context, c *cli.Context, cfg *config.Config) ([]models.ScoredItem, []string, error) {
	input, table := c.String("input"), c.String("table")
	switch {
	case input != "" && table != "":
		return nil, nil, errors.New("--input and --table are mutually exclusive")
	case input != "":
		f, err := os.Open(input)
		if err != nil {
			return nil, nil, fmt.Errorf("open scored items: %w", err)
		}
		defer f.Close()
		items, header, err := tabular.ReadScoredItems(f)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", input, err)
		}
		return items, header, nil
	case table != "":
		if !cfg.Store.Enabled() {
			return nil, nil, errors.New("--table needs store.path")
		}
		s, err := store.Open(ctx, cfg.Store.Store())
		if err != nil {
			return nil, nil, err
		}
		defer s.Close()
		items, err := s.LoadScoredItems(ctx, store.ScoredTable{
			Table:      table,
			IDColumn:   c.String("id-column"),
			NameColumn: c.String("name-column"),
			Categories: cfg.Optimize.Categories,
		})
		return items, nil, err
	default:
		return nil, nil, errors.New("one of --input or --table is required")
	}
}

// resolveCategories takes the header categories when none were configured,
// and otherwise requires every configured category to be a header column.
func resolveCategories(o *config.OptimizeConfig, header []string) error {
	if header == nil {
		return nil
	}
	if !o.CategoriesSet {
		o.Categories = append([]string(nil), header...)
		return nil
	}
	columns := make(map[string]bool, len(header))
	for _, h := range header {
		columns[h] = true
	}
	for _, cat := range o.Categories {
		if !columns[cat] {
			return fmt.Errorf("optimize.categories: %q is not a column of the scored items (have %s)", cat, strings.Join(header, ", "))
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printResult(w io.Writer, asJSON bool, full any, k int, curve []selector.Point) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(full)
	}
	if _, err := fmt.Fprintf(w, "best k: %d\n", k); err != nil {
		return err
	}
	for _, pt := range curve {
		if _, err := fmt.Fprintf(w, "%d\t%.6g\n", pt.K, pt.Similarity); err != nil {
			return err
		}
	}
	return nil
}
