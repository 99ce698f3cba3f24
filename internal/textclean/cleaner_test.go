// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package textclean

import (
	"context"
	"strings"
	"testing"

	"github.com/tomtom215/cinelex/internal/models"
)

func newCleaner(t *testing.T, opts Options, lex Lexicon) *Cleaner {
	t.Helper()
	c, err := New(opts, lex)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestClean_AllEnabled(t *testing.T) {
	c := newCleaner(t, AllOptions(), Lexicon{StopWords: []string{"the", "to"}})

	got := c.Clean("The Movies Go To War!")
	if got != "go war" {
		t.Errorf("Clean = %q, want %q", got, "go war")
	}
	for _, banned := range []string{"the", "to", "movie", "movies", "!"} {
		for _, tok := range strings.Fields(got) {
			if tok == banned {
				t.Errorf("output %q still contains %q", got, banned)
			}
		}
	}
	if got != strings.ToLower(got) {
		t.Errorf("output %q is not lowercase", got)
	}
}

func TestClean_EmbeddedStopWords(t *testing.T) {
	c := newCleaner(t, AllOptions(), Lexicon{})

	if got := c.Clean("The Movies Go To War!"); got != "go war" {
		t.Errorf("Clean = %q, want %q", got, "go war")
	}
}

func TestClean_Steps(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		lex  Lexicon
		in   string
		want string
	}{
		{
			name: "nothing enabled splits on whitespace",
			in:   "The  Movies\tGo!",
			want: "The Movies Go!",
		},
		{
			name: "tokenize only",
			opts: Options{Tokenize: true},
			in:   "Go, now!",
			want: "Go , now !",
		},
		{
			name: "alpha only drops numbers and punctuation",
			opts: Options{Tokenize: true, AlphaOnly: true},
			in:   "In 1985, Marty's DeLorean hits 88 mph.",
			want: "In Marty DeLorean hits mph",
		},
		{
			name: "stop words match regardless of case",
			opts: Options{Tokenize: true, RemoveStopWords: true},
			lex:  Lexicon{StopWords: []string{"the"}},
			in:   "THE end",
			want: "end",
		},
		{
			name: "noise words without the English list",
			opts: Options{Tokenize: true, Lowercase: true, NoiseWords: true},
			in:   "A film about films",
			want: "a about",
		},
		{
			name: "personal names",
			opts: Options{Tokenize: true, AlphaOnly: true, Lowercase: true, Names: true, Lemmatize: true},
			lex:  Lexicon{Names: []string{"Shlykov"}},
			in:   "Shlykov drives cabs.",
			want: "drive cab",
		},
		{
			name: "lemma that is a stop word is dropped",
			opts: AllOptions(),
			in:   "wills and cans",
			want: "",
		},
		{
			name: "empty after filtering",
			opts: AllOptions(),
			in:   "!!! ... ?",
			want: "",
		},
		{
			name: "stemming",
			opts: Options{Tokenize: true, Lowercase: true, Stem: true},
			in:   "Running jumped",
			want: "run jump",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newCleaner(t, tt.opts, tt.lex).Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	c := newCleaner(t, AllOptions(), Lexicon{Names: []string{"Marty", "Doc"}})
	texts := []string{
		"The Movies Go To War!",
		"Marty McFly, a 17-year-old high school student, is accidentally sent thirty years into the past.",
		"Ghosts haunt the houses of the witches; wolves and geese flee the churches.",
		"Policemen chase zombies through the cities' alleys at night...",
		"She doesn't know the wills of the kings.",
	}

	for _, text := range texts {
		once := c.Clean(text)
		if twice := c.Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q:\n once:  %q\n twice: %q", text, once, twice)
		}
	}
}

func TestClean_Deterministic(t *testing.T) {
	text := "Policemen chase zombies through the cities' alleys at night."
	a := newCleaner(t, AllOptions(), Lexicon{}).Clean(text)
	b := newCleaner(t, AllOptions(), Lexicon{}).Clean(text)
	if a != b {
		t.Errorf("two cleaners disagree: %q vs %q", a, b)
	}
}

func TestCleanSummaries_DropsMissingText(t *testing.T) {
	c := newCleaner(t, AllOptions(), Lexicon{})
	text1 := "The ghosts return."
	text3 := "Wolves!"
	rows := []models.PlotSummary{
		{MovieID: "1", Text: &text1},
		{MovieID: "2"},
		{MovieID: "3", Text: &text3},
	}

	got, err := c.CleanSummaries(context.Background(), rows)
	if err != nil {
		t.Fatalf("CleanSummaries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0].MovieID != "1" || *got[0].Text != "ghost return" {
		t.Errorf("row 0 = %s %q", got[0].MovieID, *got[0].Text)
	}
	if got[1].MovieID != "3" || *got[1].Text != "wolf" {
		t.Errorf("row 1 = %s %q", got[1].MovieID, *got[1].Text)
	}
	if *rows[0].Text != text1 {
		t.Error("input rows must not be modified")
	}
}

func TestCleanSummaries_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	text := "x"
	_, err := newCleaner(t, Options{}, Lexicon{}).CleanSummaries(ctx, []models.PlotSummary{{MovieID: "1", Text: &text}})
	if err == nil {
		t.Error("expected context error")
	}
}
