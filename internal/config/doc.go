// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

/*
Package config loads cinelex configuration from three layers, lowest
priority first:

 1. Defaults from defaultConfig, read through the koanf structs provider
 2. A YAML file: the path given to Load, else $CINELEX_CONFIG, else the
    first of DefaultConfigPaths that exists
 3. Environment variables with the CINELEX_ prefix, mapped explicitly in
    envTransformFunc; unknown variables are ignored

The merged result is validated with struct tags (internal/validation) and
then with cross-field checks in Validate.

# Sections

  - data: source root, per-source file names, output directory
  - clean: text-cleaning toggles and the optional stop-word file
  - cache: cleaned-summary cache directory and its force/no-save flags
  - wikidata: SPARQL endpoint, timeout, pacing, breaker, offline
    crosswalk file and Badger cache
  - optimize: subset search range, draws, seed, metric and aggregators
  - topics: LDA topic count and iteration budget
  - store: optional DuckDB export
  - metrics: optional Prometheus textfile path
  - logging: level and format

# Environment Variables

Examples:
  - CINELEX_DATA_ROOT -> data.root
  - CINELEX_CACHE_DIR -> cache.dir
  - CINELEX_WIKIDATA_TIMEOUT -> wikidata.timeout (Go duration)
  - CINELEX_OPTIMIZE_CATEGORIES -> optimize.categories (comma-separated)
  - CINELEX_LOG_LEVEL -> logging.level

# Example

	cfg, err := config.Load("")
	if err != nil {
	    return err
	}
	a := assemble.New(resolver)
	a.Sources = cfg.Data.Sources()
	a.Clean = cfg.Clean.Options()
*/
package config
