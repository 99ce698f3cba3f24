// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package textclean

import (
	"fmt"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/tomtom215/cinelex/internal/cache"
)

// maxLemmaHops bounds the walk along dictionary entries. Chains in the
// English dictionary are one or two hops long.
const maxLemmaHops = 8

// englishDictionary decodes the embedded English lemma table once per process.
var englishDictionary = sync.OnceValues(func() (*golem.Lemmatizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return lem, nil
})

// Lemmatizer maps tokens to their dictionary base form using the English
// lemma table. Words the table does not know are returned unchanged.
// Results are memoized.
type Lemmatizer struct {
	dict *golem.Lemmatizer
	memo cache.Memo[string]
}

// NewLemmatizer returns a Lemmatizer memoizing up to capacity tokens.
func NewLemmatizer(capacity int) (*Lemmatizer, error) {
	dict, err := englishDictionary()
	if err != nil {
		return nil, err
	}
	return &Lemmatizer{dict: dict, memo: cache.NewLRU[string](capacity)}, nil
}

// Lemma returns the base form of token. Lemma(Lemma(x)) == Lemma(x).
// A nil Lemmatizer returns token unchanged.
func (l *Lemmatizer) Lemma(token string) string {
	if l == nil || l.dict == nil {
		return token
	}
	if l.memo == nil {
		return l.fixpoint(token)
	}
	return l.memo.GetOrCompute(token, l.fixpoint)
}

// Stats exposes memo hit/miss counters.
func (l *Lemmatizer) Stats() cache.Stats {
	if l == nil || l.memo == nil {
		return cache.Stats{}
	}
	return l.memo.Stats()
}

// fixpoint follows dictionary entries until the word maps to itself. Some
// entries chain ("laid" -> "lay" -> "lie") and a few loop; for a loop the
// smallest member is returned, which every member of the loop agrees on.
func (l *Lemmatizer) fixpoint(token string) string {
	seen := map[string]int{token: 0}
	path := []string{token}
	for hop := 1; hop <= maxLemmaHops; hop++ {
		next := l.dict.Lemma(token)
		if next == "" || next == token {
			return token
		}
		if at, ok := seen[next]; ok {
			return smallest(path[at:])
		}
		seen[next] = hop
		path = append(path, next)
		token = next
	}
	return token
}

func smallest(words []string) string {
	m := words[0]
	for _, w := range words[1:] {
		if w < m {
			m = w
		}
	}
	return m
}
