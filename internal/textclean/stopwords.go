// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package textclean

import (
	_ "embed"
	"strings"
)

//go:embed stopwords_en.txt
var englishStopWords string

// NoiseWords are domain words that appear in almost every plot summary.
var NoiseWords = []string{"film", "films", "movie", "movies"}

// EnglishStopWords returns the embedded English stop-word list.
func EnglishStopWords() []string {
	return strings.Fields(englishStopWords)
}

// StopSet is a case-insensitive set of words to drop.
type StopSet map[string]struct{}

// NewStopSet builds a set from any number of word lists.
func NewStopSet(lists ...[]string) StopSet {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	s := make(StopSet, n)
	for _, l := range lists {
		s.Add(l...)
	}
	return s
}

// Add inserts words, lowercased.
func (s StopSet) Add(words ...string) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			s[w] = struct{}{}
		}
	}
}

// Contains reports whether word is in the set, ignoring case.
func (s StopSet) Contains(word string) bool {
	if _, ok := s[word]; ok {
		return true
	}
	_, ok := s[strings.ToLower(word)]
	return ok
}
