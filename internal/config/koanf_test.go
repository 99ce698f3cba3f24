// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/cinelex/internal/selector"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Data.Movies != "movie.metadata.tsv" {
		t.Errorf("Data.Movies = %q, want movie.metadata.tsv", cfg.Data.Movies)
	}
	if cfg.Data.Ratings != "title.ratings.tsv" {
		t.Errorf("Data.Ratings = %q, want title.ratings.tsv", cfg.Data.Ratings)
	}

	// Every cleaning step except stemming
	if !cfg.Clean.Tokenize || !cfg.Clean.Lemmatize || !cfg.Clean.Names {
		t.Errorf("Clean defaults should enable tokenize, lemmatize and names: %+v", cfg.Clean)
	}
	if cfg.Clean.Stem {
		t.Error("Clean.Stem should be false by default")
	}

	// Cache disabled
	if cfg.Cache.Dir != "" {
		t.Errorf("Cache.Dir = %q, want empty", cfg.Cache.Dir)
	}

	if cfg.Wikidata.Timeout != 2*time.Minute {
		t.Errorf("Wikidata.Timeout = %v, want 2m", cfg.Wikidata.Timeout)
	}
	if cfg.Wikidata.BreakerFailures != 3 {
		t.Errorf("Wikidata.BreakerFailures = %d, want 3", cfg.Wikidata.BreakerFailures)
	}

	if cfg.Optimize.Metric != "cosine" {
		t.Errorf("Optimize.Metric = %q, want cosine", cfg.Optimize.Metric)
	}
	if !reflect.DeepEqual(cfg.Optimize.Categories, selector.DefaultFearCategories) {
		t.Errorf("Optimize.Categories = %v, want %v", cfg.Optimize.Categories, selector.DefaultFearCategories)
	}

	if cfg.Topics.Topics != 10 {
		t.Errorf("Topics.Topics = %d, want 10", cfg.Topics.Topics)
	}

	if cfg.Store.Enabled() {
		t.Error("Store should be disabled by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestDefaultConfig_Validates(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Data
		{"CINELEX_DATA_ROOT", "data.root"},
		{"CINELEX_OUTPUT_DIR", "data.output"},

		// Clean
		{"CINELEX_CLEAN_STEM", "clean.stem"},
		{"CINELEX_STOP_WORDS_FILE", "clean.stop_words_file"},

		// Cache
		{"CINELEX_CACHE_DIR", "cache.dir"},
		{"CINELEX_CACHE_FORCE", "cache.force"},

		// Wikidata
		{"CINELEX_WIKIDATA_TIMEOUT", "wikidata.timeout"},
		{"CINELEX_CROSSWALK_FILE", "wikidata.crosswalk_file"},
		{"CINELEX_CROSSWALK_CACHE_TTL", "wikidata.cache_ttl"},

		// Optimize
		{"CINELEX_OPTIMIZE_CATEGORIES", "optimize.categories"},
		{"CINELEX_OPTIMIZE_SEED", "optimize.seed"},

		// Topics
		{"CINELEX_TOPICS", "topics.topics"},

		// Store
		{"CINELEX_DUCKDB_PATH", "store.path"},

		// Logging
		{"CINELEX_LOG_LEVEL", "logging.level"},

		// Case-insensitive
		{"cinelex_log_format", "logging.format"},

		// Unknown or unprefixed names are dropped
		{"CINELEX_CONFIG", ""},
		{"CINELEX_UNKNOWN", ""},
		{"LOG_LEVEL", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() with a missing explicit file should fail")
	}
}

func TestEnvMapping_PathsExist(t *testing.T) {
	k, _, err := load("")
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	for envName, path := range envMapping {
		if !k.Exists(path) {
			t.Errorf("%s maps to %s, which is not a config path", envName, path)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Run("no config file exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})

	t.Run("cinelex.yaml exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		if err := os.WriteFile("cinelex.yaml", []byte("logging:\n  level: debug\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove("cinelex.yaml")

		if got := findConfigFile(); got != "cinelex.yaml" {
			t.Errorf("findConfigFile() = %q, want cinelex.yaml", got)
		}
	})

	t.Run("env var wins over search paths", func(t *testing.T) {
		custom := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(custom, []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile("cinelex.yml", []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove("cinelex.yml")
		t.Setenv(ConfigPathEnvVar, custom)

		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("env var pointing nowhere falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(tmpDir, "nope.yaml"))
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

func TestLoadEnvVars(t *testing.T) {
	t.Setenv("CINELEX_DATA_ROOT", "/srv/corpus")
	t.Setenv("CINELEX_LOG_LEVEL", "debug")
	t.Setenv("CINELEX_WIKIDATA_TIMEOUT", "30s")
	t.Setenv("CINELEX_OPTIMIZE_CATEGORIES", "ghost, witch ,, zombie")
	t.Setenv("CINELEX_OPTIMIZE_TARGET", "witch")
	t.Setenv("CINELEX_OPTIMIZE_SEED", "42")
	t.Setenv("CINELEX_CLEAN_STEM", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data.Root != "/srv/corpus" {
		t.Errorf("Data.Root = %q, want /srv/corpus", cfg.Data.Root)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Wikidata.Timeout != 30*time.Second {
		t.Errorf("Wikidata.Timeout = %v, want 30s", cfg.Wikidata.Timeout)
	}
	want := []string{"ghost", "witch", "zombie"}
	if !reflect.DeepEqual(cfg.Optimize.Categories, want) {
		t.Errorf("Optimize.Categories = %v, want %v", cfg.Optimize.Categories, want)
	}
	if !cfg.Optimize.CategoriesSet {
		t.Error("Optimize.CategoriesSet should be true when categories come from env")
	}
	if cfg.Optimize.Seed != 42 {
		t.Errorf("Optimize.Seed = %d, want 42", cfg.Optimize.Seed)
	}
	if !cfg.Clean.Stem {
		t.Error("Clean.Stem should be true from env")
	}

	// Defaults still apply for unset values
	if cfg.Data.Movies != "movie.metadata.tsv" {
		t.Errorf("Data.Movies = %q, want default", cfg.Data.Movies)
	}
	if cfg.Store.MaxMemory != "1GB" {
		t.Errorf("Store.MaxMemory = %q, want 1GB (default)", cfg.Store.MaxMemory)
	}
}

func TestLoad_CategoriesSet(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Optimize.CategoriesSet {
			t.Error("CategoriesSet should be false for default categories")
		}
	})

	t.Run("file", func(t *testing.T) {
		path := writeConfig(t, "optimize:\n  categories: [clown, doll]\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !cfg.Optimize.CategoriesSet {
			t.Error("CategoriesSet should be true when the file lists categories")
		}
		if !reflect.DeepEqual(cfg.Optimize.Categories, []string{"clown", "doll"}) {
			t.Errorf("Categories = %v", cfg.Optimize.Categories)
		}
	})

	t.Run("other keys in file", func(t *testing.T) {
		path := writeConfig(t, "optimize:\n  draws: 7\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Optimize.CategoriesSet {
			t.Error("CategoriesSet should stay false when only other optimize keys are set")
		}
		if cfg.Optimize.Draws != 7 {
			t.Errorf("Draws = %d, want 7", cfg.Optimize.Draws)
		}
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cinelex.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
data:
  root: /corpus
  output: ""
clean:
  names: false
  stop_words_file: /corpus/stops.txt
wikidata:
  crosswalk_file: /corpus/crosswalk.tsv
  cache_ttl: 48h
optimize:
  min: 5
  max: 50
  step: 5
  metric: hotelling
  aggregate: median
  categories: [ghost, vampire]
topics:
  topics: 4
store:
  path: /corpus/cinelex.duckdb
logging:
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data.Root != "/corpus" {
		t.Errorf("Data.Root = %q, want /corpus", cfg.Data.Root)
	}
	if cfg.Clean.Names {
		t.Error("Clean.Names should be false from file")
	}
	if !cfg.Clean.Lemmatize {
		t.Error("Clean.Lemmatize should keep its default")
	}
	if cfg.Wikidata.CacheTTL != 48*time.Hour {
		t.Errorf("Wikidata.CacheTTL = %v, want 48h", cfg.Wikidata.CacheTTL)
	}

	p := cfg.Optimize.Params()
	if p.Range != (selector.Range{Min: 5, Max: 50, Step: 5}) {
		t.Errorf("Range = %+v", p.Range)
	}
	if p.Metric == nil || p.Metric.Name() != "hotelling" {
		t.Errorf("Metric = %v, want hotelling", p.Metric)
	}
	if p.Aggregate != selector.AggMedian {
		t.Errorf("Aggregate = %q, want median", p.Aggregate)
	}
	if !reflect.DeepEqual(cfg.Optimize.Categories, []string{"ghost", "vampire"}) {
		t.Errorf("Categories = %v", cfg.Optimize.Categories)
	}

	if cfg.Topics.Model().Topics != 4 {
		t.Errorf("Topics = %d, want 4", cfg.Topics.Model().Topics)
	}
	if !cfg.Store.Enabled() || cfg.Store.Store().Path != "/corpus/cinelex.duckdb" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Logging.Logger().Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: warn\ntopics:\n  topics: 4\n")
	t.Setenv("CINELEX_LOG_LEVEL", "error")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env)", cfg.Logging.Level)
	}
	if cfg.Topics.Topics != 4 {
		t.Errorf("Topics.Topics = %d, want 4 (file)", cfg.Topics.Topics)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		errMsg  string
	}{
		{
			name:    "bad log level",
			envVars: map[string]string{"CINELEX_LOG_LEVEL": "loud"},
			errMsg:  "Level",
		},
		{
			name:    "unknown metric",
			envVars: map[string]string{"CINELEX_OPTIMIZE_METRIC": "jaccard"},
			errMsg:  "Metric",
		},
		{
			name:    "max below min",
			envVars: map[string]string{"CINELEX_OPTIMIZE_MIN": "10", "CINELEX_OPTIMIZE_MAX": "5"},
			errMsg:  "Max",
		},
		{
			name:    "zero draws",
			envVars: map[string]string{"CINELEX_OPTIMIZE_DRAWS": "0"},
			errMsg:  "Draws",
		},
		{
			name:    "target outside categories",
			envVars: map[string]string{"CINELEX_OPTIMIZE_TARGET": "clown"},
			errMsg:  "optimize.target",
		},
		{
			name:    "duplicate category",
			envVars: map[string]string{"CINELEX_OPTIMIZE_CATEGORIES": "ghost,ghost"},
			errMsg:  "twice",
		},
		{
			name:    "endpoint without scheme",
			envVars: map[string]string{"CINELEX_WIKIDATA_ENDPOINT": "query.wikidata.org/sparql"},
			errMsg:  "wikidata.endpoint",
		},
		{
			name:    "placeholder user agent",
			envVars: map[string]string{"CINELEX_WIKIDATA_USER_AGENT": "bot (you@example.com)"},
			errMsg:  "placeholder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q should mention %q", err, tt.errMsg)
			}
		})
	}
}

func TestLoadCrosswalkFileSkipsEndpointChecks(t *testing.T) {
	t.Setenv("CINELEX_CROSSWALK_FILE", "/corpus/crosswalk.tsv")
	t.Setenv("CINELEX_WIKIDATA_ENDPOINT", "not a url")

	if _, err := Load(""); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}
