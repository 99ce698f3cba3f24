// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

/*
Package textclean turns free-text plot summaries into lexicon-ready token
strings.

# Pipeline

Each step is toggled by Options and, when enabled, runs in this order:

 1. Tokenize: words and punctuation tokens, contractions split
 2. Alphabetic filter: drop tokens with any non-letter rune
 3. Casefold (golang.org/x/text/cases)
 4. Stop-word removal: English list, optionally film noise words and a
    personal-name list, matched case-insensitively
 5. Lemmatize: dictionary base forms from the golem English table,
    memoized in an LRU, then the stop filter again
 6. Stem (optional, Snowball English)

Tokens are joined with single spaces. Cleaning is deterministic and, without
stemming, idempotent: cleaning cleaned text returns it unchanged.

# Batch and cache

CleanSummaries drops rows with no text before cleaning. SummaryCache stores
the cleaned table as TSV (header "movie_id", "summary") next to other cache
artifacts and returns it verbatim on later runs. The cache key is the source
path alone.

	cleaner, err := textclean.New(textclean.AllOptions(), textclean.Lexicon{Names: names})
	if err != nil {
	    return err
	}
	cache := textclean.SummaryCache{Dir: ".cinelex-cache"}
	rows, err := cache.Load(ctx, src, func(ctx context.Context) ([]models.PlotSummary, error) {
	    return cleaner.CleanSummaries(ctx, raw)
	})
*/
package textclean
