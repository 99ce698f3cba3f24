// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package textclean

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/cinelex/internal/models"
)

type countingCompute struct {
	calls int
	text  string
	err   error
}

func (c *countingCompute) run(context.Context) ([]models.PlotSummary, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	text := c.text
	return []models.PlotSummary{{MovieID: "42", Text: &text}}, nil
}

func TestSummaryCache_MissThenHit(t *testing.T) {
	cache := SummaryCache{Dir: t.TempDir()}
	source := filepath.Join(t.TempDir(), "plot_summaries.txt")
	compute := &countingCompute{text: "ghost return"}

	first, err := cache.Load(context.Background(), source, compute.run)
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	second, err := cache.Load(context.Background(), source, compute.run)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}

	if compute.calls != 1 {
		t.Errorf("compute called %d times, want 1", compute.calls)
	}
	if len(second) != 1 || second[0].MovieID != "42" || *second[0].Text != *first[0].Text {
		t.Errorf("cached rows = %+v", second)
	}

	path, _ := cache.Path(source)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cache file: %v", err)
	}
	if !strings.HasPrefix(string(data), "movie_id\tsummary\n") {
		t.Errorf("cache file header = %q", data)
	}
}

func TestSummaryCache_HitIgnoresOptions(t *testing.T) {
	cache := SummaryCache{Dir: t.TempDir()}
	source := "plot_summaries.txt"

	if _, err := cache.Load(context.Background(), source, (&countingCompute{text: "lemmatized text"}).run); err != nil {
		t.Fatalf("seed Load: %v", err)
	}

	// A different cleaning configuration still gets the stored artifact.
	other := &countingCompute{text: "Raw Text!"}
	rows, err := cache.Load(context.Background(), source, other.run)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if other.calls != 0 || *rows[0].Text != "lemmatized text" {
		t.Errorf("expected cached text, got %q after %d computes", *rows[0].Text, other.calls)
	}
}

func TestSummaryCache_Force(t *testing.T) {
	cache := SummaryCache{Dir: t.TempDir()}
	source := "plot_summaries.txt"
	if _, err := cache.Load(context.Background(), source, (&countingCompute{text: "old"}).run); err != nil {
		t.Fatalf("seed Load: %v", err)
	}

	cache.Force = true
	fresh := &countingCompute{text: "new"}
	rows, err := cache.Load(context.Background(), source, fresh.run)
	if err != nil {
		t.Fatalf("forced Load: %v", err)
	}
	if fresh.calls != 1 || *rows[0].Text != "new" {
		t.Errorf("forced load returned %q after %d computes", *rows[0].Text, fresh.calls)
	}

	cache.Force = false
	rows, err = cache.Load(context.Background(), source, fresh.run)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *rows[0].Text != "new" {
		t.Errorf("forced result was not saved, got %q", *rows[0].Text)
	}
}

func TestSummaryCache_NoSave(t *testing.T) {
	cache := SummaryCache{Dir: t.TempDir(), NoSave: true}
	source := "plot_summaries.txt"
	compute := &countingCompute{text: "x"}

	for i := 0; i < 2; i++ {
		if _, err := cache.Load(context.Background(), source, compute.run); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}
	if compute.calls != 2 {
		t.Errorf("compute called %d times, want 2", compute.calls)
	}
	path, _ := cache.Path(source)
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cache file should not exist, stat err = %v", err)
	}
}

func TestSummaryCache_Disabled(t *testing.T) {
	compute := &countingCompute{text: "x"}
	for i := 0; i < 2; i++ {
		if _, err := (SummaryCache{}).Load(context.Background(), "src", compute.run); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}
	if compute.calls != 2 {
		t.Errorf("compute called %d times, want 2", compute.calls)
	}
}

func TestSummaryCache_ComputeError(t *testing.T) {
	cache := SummaryCache{Dir: t.TempDir()}
	boom := errors.New("boom")

	_, err := cache.Load(context.Background(), "src", (&countingCompute{err: boom}).run)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestSummaryCache_PathDistinguishesDirectories(t *testing.T) {
	cache := SummaryCache{Dir: "cache"}
	a, err := cache.Path("/data/a/plot_summaries.txt")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := cache.Path("/data/b/plot_summaries.txt")

	if a == b {
		t.Errorf("paths collide: %s", a)
	}
	if !strings.HasPrefix(filepath.Base(a), "plot_summaries-") {
		t.Errorf("path %s should start with the source base name", a)
	}
}
