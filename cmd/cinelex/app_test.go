// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/cinelex/internal/config"
	"github.com/tomtom215/cinelex/internal/models"
	"github.com/tomtom215/cinelex/internal/wikidata"
)

// isolateConfig keeps stray config files and CINELEX_* variables out of a run.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("CINELEX_LOG_LEVEL", "error")
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// writeCorpus lays out a two-theme corpus: haunted houses and wolf hunts.
func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	var movies, summaries strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&movies, "%d\t/m/f%d\tFilm %d\t19%02d\t\t90\t{}\t{}\t{}\n", i, i, i, 70+i)
		text := "The ghosts haunt the old house every night."
		if i%2 == 0 {
			text = "Wolves hunt in the forest under the blood moon."
		}
		fmt.Fprintf(&summaries, "%d\t%s\n", i, text)
	}
	writeFiles(t, dir, map[string]string{
		"movie.metadata.tsv":     movies.String(),
		"character.metadata.tsv": "1\t/m/f1\t1971\tMira\t1950-01-01\tF\t1.65\t\tAnn Actor\t21\t/m/map1\t/m/ch1\t/m/ac1\n",
		"name.clusters.txt":      "Mira\t/m/map1\n",
		"plot_summaries.txt":     summaries.String(),
		"title.ratings.tsv":      "tconst\taverageRating\tnumVotes\ntt1\t7.5\t100\n",
		"names.csv":              "name\nMira\n",
	})
	return dir
}

func runApp(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	if err := app.Run(append([]string{"cinelex"}, args...)); err != nil {
		t.Fatalf("cinelex %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestApp_Assemble(t *testing.T) {
	isolateConfig(t)
	root := writeCorpus(t)

	var crosswalk bytes.Buffer
	if err := wikidata.WriteCrosswalk(&crosswalk, []models.Crosswalk{{Tconst: "tt1", FreebaseID: "/m/f1"}}); err != nil {
		t.Fatal(err)
	}
	crosswalkFile := filepath.Join(t.TempDir(), "crosswalk.tsv")
	writeFiles(t, filepath.Dir(crosswalkFile), map[string]string{"crosswalk.tsv": crosswalk.String()})
	t.Setenv("CINELEX_CROSSWALK_FILE", crosswalkFile)

	out := filepath.Join(t.TempDir(), "out")
	runApp(t, "assemble", "--root", root, "--output", out)

	data, err := os.ReadFile(filepath.Join(out, "movies.tsv"))
	if err != nil {
		t.Fatalf("movies.tsv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 11 {
		t.Fatalf("movies.tsv has %d lines, want header + 10", len(lines))
	}
	first := strings.Split(lines[1], "\t")
	if first[2] != "Film 1" || first[10] != "7.5" {
		t.Errorf("first movie row = %q", lines[1])
	}
	summary := " " + first[9] + " "
	if !strings.Contains(summary, " ghost ") || !strings.Contains(summary, " house ") || strings.Contains(summary, " the ") {
		t.Errorf("summary = %q, want cleaned lemmas", first[9])
	}
}

func TestApp_Optimize(t *testing.T) {
	isolateConfig(t)

	var scores strings.Builder
	scores.WriteString("id\tname\tclown\tdoll\n")
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&scores, "w%d\tword%d\t%.2f\t%.2f\n", i, i, float64(i)/10, 1-float64(i)/10)
	}
	input := filepath.Join(t.TempDir(), "scores.tsv")
	writeFiles(t, filepath.Dir(input), map[string]string{"scores.tsv": scores.String()})

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "single target", args: []string{"--target", "clown"}, want: "best k: "},
		{name: "every category as JSON", args: []string{"--json"}, want: `"k": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"optimize", "--input", input, "--max", "4", "--draws", "5", "--seed", "7"}, tt.args...)
			if got := runApp(t, args...); !strings.Contains(got, tt.want) {
				t.Errorf("output %q lacks %q", got, tt.want)
			}
		})
	}
}

func TestApp_Optimize_UnknownCategory(t *testing.T) {
	isolateConfig(t)
	input := filepath.Join(t.TempDir(), "scores.tsv")
	writeFiles(t, filepath.Dir(input), map[string]string{"scores.tsv": "id\tclown\nw1\t0.5\nw2\t0.1\n"})

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"cinelex", "optimize", "--input", input, "--categories", "ghost", "--max", "2"})
	if err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Errorf("err = %v, want unknown category ghost", err)
	}
}

func TestApp_Topics(t *testing.T) {
	isolateConfig(t)
	t.Setenv("CINELEX_TOPICS_ITERATIONS", "20")
	t.Setenv("CINELEX_TOPICS_TRANSFORMATION_PASSES", "10")
	root := writeCorpus(t)

	got := runApp(t, "topics", "--root", root, "--topics", "2", "--top-words", "3", "--top-docs", "1")

	for _, want := range []string{"topic 0:", "topic 1:", "shared top words:", "Film "} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}
}
