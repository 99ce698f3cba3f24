// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package textclean

import (
	"strings"
	"unicode"
)

// contractionSuffixes are split off a word the way a Treebank tokenizer does
// ("they'll" -> "they", "'ll"). "n't" is handled separately.
var contractionSuffixes = []string{"'s", "'re", "'ll", "'ve", "'d", "'m"}

// Tokenize splits text into word-like units and punctuation tokens.
//
// A word is a run of letters, digits and combining marks; an apostrophe or
// hyphen between two word runes stays inside the word ("o'clock",
// "well-known"). Contractions are split ("don't" -> "do", "n't"). Every other
// non-space rune is a token of its own, except that runs of the same
// punctuation rune ("...", "--") form one token.
func Tokenize(text string) []string {
	runes := []rune(normalizeQuotes(text))
	var tokens []string

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case isWordRune(r):
			j := i + 1
			for j < len(runes) {
				if isWordRune(runes[j]) {
					j++
					continue
				}
				if (runes[j] == '\'' || runes[j] == '-') && j+1 < len(runes) && isWordRune(runes[j+1]) {
					j += 2
					continue
				}
				break
			}
			tokens = append(tokens, splitContraction(string(runes[i:j]))...)
			i = j
		default:
			j := i + 1
			for j < len(runes) && runes[j] == r {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// normalizeQuotes maps typographic apostrophes to ASCII so contractions
// written with either form split the same way.
func normalizeQuotes(s string) string {
	if !strings.ContainsAny(s, "‘’") {
		return s
	}
	return strings.NewReplacer("‘", "'", "’", "'").Replace(s)
}

func splitContraction(word string) []string {
	if !strings.ContainsRune(word, '\'') {
		return []string{word}
	}
	lower := strings.ToLower(word)
	if strings.HasSuffix(lower, "n't") && len(word) > 3 {
		return []string{word[:len(word)-3], word[len(word)-3:]}
	}
	for _, suffix := range contractionSuffixes {
		if strings.HasSuffix(lower, suffix) && len(word) > len(suffix) {
			cut := len(word) - len(suffix)
			return []string{word[:cut], word[cut:]}
		}
	}
	return []string{word}
}

// isAlpha reports whether tok is made of letters. Combining marks are
// accepted after the first rune, since casefolding can introduce them
// ("İ" folds to "i" plus U+0307).
func isAlpha(tok string) bool {
	if tok == "" {
		return false
	}
	for i, r := range tok {
		if unicode.IsLetter(r) || (i > 0 && unicode.IsMark(r)) {
			continue
		}
		return false
	}
	return true
}
