// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package textclean

import (
	"strings"

	"github.com/kljensen/snowball"
	"golang.org/x/text/cases"
)

// DefaultLemmaCapacity bounds the lemma memo.
const DefaultLemmaCapacity = 200000

// Cleaner turns raw text into a space-joined token string. A Cleaner is safe
// for concurrent use.
type Cleaner struct {
	opts  Options
	stops StopSet
	lemma *Lemmatizer
}

// New builds a Cleaner for opts. The stop set is the union of the lists the
// options enable. It fails only when lemmatization is on and the lemma
// dictionary cannot be loaded.
func New(opts Options, lex Lexicon) (*Cleaner, error) {
	stops := NewStopSet()
	if opts.RemoveStopWords {
		if lex.StopWords != nil {
			stops.Add(lex.StopWords...)
		} else {
			stops.Add(EnglishStopWords()...)
		}
	}
	if opts.NoiseWords {
		stops.Add(NoiseWords...)
	}
	if opts.Names {
		stops.Add(lex.Names...)
	}

	c := &Cleaner{opts: opts, stops: stops}
	if opts.Lemmatize {
		lemma, err := NewLemmatizer(DefaultLemmaCapacity)
		if err != nil {
			return nil, err
		}
		c.lemma = lemma
	}
	return c, nil
}

// Options returns the options the Cleaner was built with.
func (c *Cleaner) Options() Options { return c.opts }

// Lemmatizer returns the memoizing lemmatizer, or nil when lemmatization is off.
func (c *Cleaner) Lemmatizer() *Lemmatizer { return c.lemma }

// Clean runs the enabled steps over text. Text with nothing left after
// filtering yields "".
func (c *Cleaner) Clean(text string) string {
	var tokens []string
	if c.opts.Tokenize {
		tokens = Tokenize(text)
	} else {
		tokens = strings.Fields(text)
	}

	if c.opts.AlphaOnly {
		tokens = filter(tokens, isAlpha)
	}

	if c.opts.Lowercase {
		// A Caser keeps state between calls and must not be shared.
		fold := cases.Fold()
		for i, t := range tokens {
			tokens[i] = fold.String(t)
		}
	}

	dropStops := len(c.stops) > 0
	if dropStops {
		tokens = filter(tokens, c.keep)
	}

	if c.lemma != nil {
		for i, t := range tokens {
			tokens[i] = c.lemma.Lemma(t)
		}
		// A lemma can itself be a stop word ("wills" -> "will"); drop it
		// so a second pass has nothing left to remove.
		if dropStops {
			tokens = filter(tokens, c.keep)
		}
	}

	if c.opts.Stem {
		for i, t := range tokens {
			if stemmed, err := snowball.Stem(t, "english", true); err == nil && stemmed != "" {
				tokens[i] = stemmed
			}
		}
	}

	return strings.Join(tokens, " ")
}

func (c *Cleaner) keep(tok string) bool {
	return !c.stops.Contains(tok)
}

// filter keeps tokens for which keep returns true, reusing the backing array.
func filter(tokens []string, keep func(string) bool) []string {
	out := tokens[:0]
	for _, t := range tokens {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
