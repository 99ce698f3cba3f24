// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

// Package main is the cinelex command line.
//
// Cinelex assembles the CMU Movie Summary corpus into clean movie, character
// and name-cluster tables, attaches IMDb ratings through a Wikidata
// crosswalk, and analyses the result: subset-size search over scored items
// and LDA topics over the cleaned plot summaries.
//
// # Commands
//
//	cinelex assemble   build the tables (TSV and/or DuckDB)
//	cinelex crosswalk  fetch the IMDb/Freebase crosswalk into a TSV file
//	cinelex optimize   search the best top-k subset size for scored items
//	cinelex topics     fit LDA topics on the cleaned summaries
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Command-line flags
//   - Environment variables (CINELEX_*)
//   - Config file (--config, $CINELEX_CONFIG or ./cinelex.yaml)
//   - Built-in defaults
//
// # Example Usage
//
//	export CINELEX_DATA_ROOT=./MovieSummaries
//	export CINELEX_CACHE_DIR=./cache
//	cinelex assemble --output ./out
//
//	cinelex optimize --input fear_scores.tsv --target ghost --max 200
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/tomtom215/cinelex/internal/logging"
)

const configFlag = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logging.Error().Err(err).Msg("cinelex failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "cinelex"
	app.Usage = "Film metadata preparation and lexicon analysis"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  configFlag + ", c",
			Usage: "path to a YAML config file",
		},
	}
	app.Commands = []cli.Command{
		makeAssembleCMD(),
		makeCrosswalkCMD(),
		makeOptimizeCMD(),
		makeTopicsCMD(),
	}
	return app
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
