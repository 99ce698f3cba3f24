// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

/*
Package models defines the records that flow between pipeline stages.

Key Components:

  - MovieRecord: one row per film after joining metadata, cleaned summary and rating
  - CharacterRecord: one row per character appearance
  - NameCluster: character name to character/actor map ID, passed through untouched
  - PlotSummary: a movie ID with raw or cleaned summary text
  - Rating, Crosswalk: external rating table and IMDb to Freebase identifier pairs
  - ScoredItem: any item carrying lexicon category scores, consumed by the selector

Optional values are pointers. A nil pointer is an absent value, never zero.
Every table is produced by one stage and handed to the next by value; no
stage mutates a table it did not create.
*/
package models
