// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

/*
Package store keeps assembled tables and scored items in a DuckDB file for
ad-hoc analysis.

Tables:
  - movies: one row per MovieRecord; list columns hold JSON arrays
  - characters: one row per CharacterRecord
  - name_clusters: character name to map ID
  - any scored-item table: an id column, an optional name column and one
    DOUBLE column per category

WriteTables replaces the three corpus tables in one transaction, so a store
always holds exactly one assembly run. Statements are built with squirrel and
identifiers supplied by callers are quoted.
*/
package store
