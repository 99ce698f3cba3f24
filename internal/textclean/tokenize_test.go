// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package textclean

import (
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Movies Go To War!", "The|Movies|Go|To|War|!"},
		{"Hello, world.", "Hello|,|world|."},
		{"don't stop", "do|n't|stop"},
		{"They'll see Mars' moons", "They|'ll|see|Mars|'|moons"},
		{"a well-known o'clock", "a|well-known|o'clock"},
		{"wait... what?!", "wait|...|what|?|!"},
		{"it’s curly", "it|'s|curly"},
		{"1960s era", "1960s|era"},
		{"  \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := strings.Join(Tokenize(tt.in), "|")
			if got != tt.want {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsAlpha(t *testing.T) {
	for _, tok := range []string{"war", "Café", "i̇stanbul"} {
		if !isAlpha(tok) {
			t.Errorf("isAlpha(%q) = false", tok)
		}
	}
	for _, tok := range []string{"", "n't", "1960s", "well-known", "!", "̇a"} {
		if isAlpha(tok) {
			t.Errorf("isAlpha(%q) = true", tok)
		}
	}
}

func TestStopSet(t *testing.T) {
	s := NewStopSet([]string{"The", " to "}, NoiseWords)

	for _, w := range []string{"the", "THE", "To", "movies", "Film"} {
		if !s.Contains(w) {
			t.Errorf("Contains(%q) = false", w)
		}
	}
	if s.Contains("war") {
		t.Error("Contains(war) = true")
	}
}

func TestEnglishStopWords(t *testing.T) {
	words := EnglishStopWords()
	if len(words) < 150 {
		t.Fatalf("embedded list too short: %d", len(words))
	}
	s := NewStopSet(words)
	for _, w := range []string{"the", "to", "and", "will", "can", "don't"} {
		if !s.Contains(w) {
			t.Errorf("expected %q in English stop words", w)
		}
	}
}
