// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

/*
Package wikidata resolves the IMDb to Freebase identifier crosswalk used to
attach ratings to movies.

The crosswalk comes from one SPARQL query against the Wikidata endpoint:

	SELECT ?item ?tconst ?freebaseID WHERE {
	  ?item wdt:P345 ?tconst.
	  OPTIONAL { ?item wdt:P646 ?freebaseID }
	}

Resilience Mechanisms:
  - Timeout: every request runs under a context deadline
  - Circuit Breaker: sony/gobreaker, so repeated runs against a failing
    endpoint fail fast instead of waiting out the timeout each time
  - Pacing: golang.org/x/time/rate limits requests per second
  - No retries: a failed request fails the run

Results may contain duplicate identifiers; deduplication is left to the
assembler. CachedResolver can keep the last result in BadgerDB so reruns
skip the slow query, and FileResolver reads a crosswalk exported earlier.
*/
package wikidata
