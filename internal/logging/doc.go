// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

// Package logging provides the zerolog-based structured logger used by every
// cinelex stage.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once from the CLI
//   - Console output for interactive runs, JSON for batch jobs
//   - A run ID carried in the context and stamped on every line of a run
//   - Component loggers and stage timing helpers
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "console"})
//
//	ctx = logging.ContextWithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Str("source", root).Msg("assembling tables")
//
//	done := logging.Stage(ctx, "clean_summaries")
//	defer done()
//
// # Structured Logging Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Int("rows", n).Msg("loaded movies")  // Correct
//	logging.Info().Int("rows", n)                       // WRONG - log not emitted
package logging
