// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package textclean

// Options toggles the cleaning steps. Enabled steps always run in the order
// tokenize, alphabetic filter, casefold, stop-word removal, lemmatize, stem.
type Options struct {
	// Tokenize splits text into words and punctuation. When off, text is
	// split on whitespace only.
	Tokenize bool `koanf:"tokenize"`

	// AlphaOnly drops every token containing a non-letter rune.
	AlphaOnly bool `koanf:"alpha_only"`

	// Lowercase casefolds tokens.
	Lowercase bool `koanf:"lowercase"`

	// RemoveStopWords drops English stop words.
	RemoveStopWords bool `koanf:"remove_stop_words"`

	// NoiseWords drops "film", "films", "movie" and "movies".
	NoiseWords bool `koanf:"noise_words"`

	// Names drops personal names from the external name list.
	Names bool `koanf:"names"`

	// Lemmatize reduces nouns to their base form.
	Lemmatize bool `koanf:"lemmatize"`

	// Stem applies the Snowball English stemmer after lemmatization.
	// Stemmed output is not guaranteed to be stable under re-cleaning.
	Stem bool `koanf:"stem"`
}

// AllOptions enables every step except stemming.
func AllOptions() Options {
	return Options{
		Tokenize:        true,
		AlphaOnly:       true,
		Lowercase:       true,
		RemoveStopWords: true,
		NoiseWords:      true,
		Names:           true,
		Lemmatize:       true,
	}
}

// Lexicon supplies the word lists behind the stop-word steps.
type Lexicon struct {
	// StopWords replaces the embedded English list when non-nil.
	StopWords []string
	// Names is the personal-name list used when Options.Names is set.
	Names []string
}
