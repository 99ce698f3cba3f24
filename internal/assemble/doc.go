// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

/*
Package assemble joins the corpus sources into movie, character and
name-cluster tables.

Steps, in order:

 1. Load movie metadata, character metadata and name clusters; clean plot
    summaries through the text cleaner's batch path and summary cache
 2. Left-join movies with cleaned summaries on the Wikipedia movie ID
 3. Drop exact duplicates on (name, release date, revenue, languages,
    genres, countries, runtime, summary), keeping the first row
 4. Reduce the release date to a year
 5. Decode the language, country and genre mappings to their values
 6. Reduce the character release date and actor birth date to years
 7. Attach IMDb ratings through the IMDb/Freebase crosswalk

Missing source files and crosswalk failures abort the run. Movies without a
summary or rating keep those fields nil.
*/
package assemble
