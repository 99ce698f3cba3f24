// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package config

import (
	"time"

	"github.com/tomtom215/cinelex/internal/assemble"
	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/selector"
	"github.com/tomtom215/cinelex/internal/store"
	"github.com/tomtom215/cinelex/internal/textclean"
	"github.com/tomtom215/cinelex/internal/topics"
	"github.com/tomtom215/cinelex/internal/wikidata"
)

// Config holds every section.
type Config struct {
	Data     DataConfig     `koanf:"data"`
	Clean    CleanConfig    `koanf:"clean"`
	Cache    CacheConfig    `koanf:"cache"`
	Wikidata WikidataConfig `koanf:"wikidata"`
	Optimize OptimizeConfig `koanf:"optimize"`
	Topics   TopicsConfig   `koanf:"topics"`
	Store    StoreConfig    `koanf:"store"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DataConfig locates the corpus.
type DataConfig struct {
	Root          string `koanf:"root" validate:"required"`
	Movies        string `koanf:"movies" validate:"required"`
	Characters    string `koanf:"characters" validate:"required"`
	NameClusters  string `koanf:"name_clusters" validate:"required"`
	PlotSummaries string `koanf:"plot_summaries" validate:"required"`
	Ratings       string `koanf:"ratings" validate:"required"`
	Names         string `koanf:"names" validate:"required"`
	// Output receives movies.tsv, characters.tsv and name_clusters.tsv.
	// Empty skips the TSV output.
	Output string `koanf:"output" validate:"dirpath_or_empty"`
}

// Sources converts the file names for the assembler.
func (d DataConfig) Sources() assemble.Sources {
	return assemble.Sources{
		Movies:        d.Movies,
		Characters:    d.Characters,
		NameClusters:  d.NameClusters,
		PlotSummaries: d.PlotSummaries,
		Ratings:       d.Ratings,
		Names:         d.Names,
	}
}

// CleanConfig toggles the text-cleaning steps.
type CleanConfig struct {
	Tokenize        bool `koanf:"tokenize"`
	AlphaOnly       bool `koanf:"alpha_only"`
	Lowercase       bool `koanf:"lowercase"`
	RemoveStopWords bool `koanf:"remove_stop_words"`
	NoiseWords      bool `koanf:"noise_words"`
	Names           bool `koanf:"names"`
	Lemmatize       bool `koanf:"lemmatize"`
	Stem            bool `koanf:"stem"`
	// StopWordsFile replaces the embedded English list, one word per line.
	StopWordsFile string `koanf:"stop_words_file"`
}

// Options converts the toggles for the cleaner.
func (c CleanConfig) Options() textclean.Options {
	return textclean.Options{
		Tokenize:        c.Tokenize,
		AlphaOnly:       c.AlphaOnly,
		Lowercase:       c.Lowercase,
		RemoveStopWords: c.RemoveStopWords,
		NoiseWords:      c.NoiseWords,
		Names:           c.Names,
		Lemmatize:       c.Lemmatize,
		Stem:            c.Stem,
	}
}

// CacheConfig controls the cleaned-summary cache. An empty Dir disables it.
type CacheConfig struct {
	Dir    string `koanf:"dir" validate:"dirpath_or_empty"`
	Force  bool   `koanf:"force"`
	NoSave bool   `koanf:"no_save"`
}

// SummaryCache converts the section for the assembler.
func (c CacheConfig) SummaryCache() textclean.SummaryCache {
	return textclean.SummaryCache{Dir: c.Dir, Force: c.Force, NoSave: c.NoSave}
}

// WikidataConfig configures the crosswalk source.
type WikidataConfig struct {
	Endpoint          string        `koanf:"endpoint" validate:"required"`
	UserAgent         string        `koanf:"user_agent" validate:"required"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gte=0"`
	BreakerFailures   uint32        `koanf:"breaker_failures" validate:"gt=0"`
	BreakerCooldown   time.Duration `koanf:"breaker_cooldown" validate:"gt=0"`

	// CrosswalkFile, when set, is read instead of querying the endpoint.
	CrosswalkFile string `koanf:"crosswalk_file"`

	// CacheDir enables the Badger crosswalk cache.
	CacheDir string        `koanf:"cache_dir" validate:"dirpath_or_empty"`
	CacheTTL time.Duration `koanf:"cache_ttl" validate:"gte=0"`
	Refresh  bool          `koanf:"refresh"`
}

// Client converts the section for wikidata.NewClient.
func (w WikidataConfig) Client() wikidata.Config {
	return wikidata.Config{
		Endpoint:          w.Endpoint,
		UserAgent:         w.UserAgent,
		Timeout:           w.Timeout,
		RequestsPerSecond: w.RequestsPerSecond,
		BreakerFailures:   w.BreakerFailures,
		BreakerCooldown:   w.BreakerCooldown,
	}
}

// OptimizeConfig configures the subset search.
type OptimizeConfig struct {
	Min        int      `koanf:"min" validate:"gte=1"`
	Max        int      `koanf:"max" validate:"gtefield=Min"`
	Step       int      `koanf:"step" validate:"gte=0"`
	Draws      int      `koanf:"draws" validate:"gt=0"`
	Seed       int64    `koanf:"seed"`
	Metric     string   `koanf:"metric" validate:"oneof=cosine euclidean hotelling"`
	Aggregate  string   `koanf:"aggregate" validate:"oneof=max min mean median sum"`
	Combine    string   `koanf:"combine" validate:"oneof=max min mean median sum"`
	Workers    int      `koanf:"workers" validate:"gte=0"`
	Categories []string `koanf:"categories" validate:"required,min=1,dive,required"`
	// Target selects single-category search; empty searches every category.
	Target string `koanf:"target"`
	// CategoriesSet is true when Categories came from the file, the
	// environment or a flag rather than the defaults.
	CategoriesSet bool `koanf:"-"`
}

// Params converts the section for selector.TopOptimize. Metric is resolved
// by name; validation guarantees it exists.
func (o OptimizeConfig) Params() selector.Params {
	metric, _ := selector.LookupMetric(o.Metric)
	return selector.Params{
		Range:     selector.Range{Min: o.Min, Max: o.Max, Step: o.Step},
		Draws:     o.Draws,
		Seed:      o.Seed,
		Metric:    metric,
		Aggregate: o.Aggregate,
		Combine:   o.Combine,
		Workers:   o.Workers,
	}
}

// TopicsConfig configures the LDA fit.
type TopicsConfig struct {
	Topics               int `koanf:"topics" validate:"gt=0"`
	Iterations           int `koanf:"iterations" validate:"gt=0"`
	TransformationPasses int `koanf:"transformation_passes" validate:"gt=0"`
	Workers              int `koanf:"workers" validate:"gte=0"`
	TopWords             int `koanf:"top_words" validate:"gt=0"`
	TopDocuments         int `koanf:"top_documents" validate:"gte=0"`
}

// Model converts the section for topics.Fit.
func (t TopicsConfig) Model() topics.Config {
	return topics.Config{
		Topics:               t.Topics,
		Iterations:           t.Iterations,
		TransformationPasses: t.TransformationPasses,
		Workers:              t.Workers,
	}
}

// StoreConfig configures the optional DuckDB store. Empty Path disables it.
type StoreConfig struct {
	Path      string `koanf:"path"`
	Threads   int    `koanf:"threads" validate:"gte=0"`
	MaxMemory string `koanf:"max_memory"`
	BatchSize int    `koanf:"batch_size" validate:"gte=0"`
}

// Enabled reports whether a store path is set.
func (s StoreConfig) Enabled() bool { return s.Path != "" }

// Store converts the section for store.Open.
func (s StoreConfig) Store() store.Config {
	return store.Config{Path: s.Path, Threads: s.Threads, MaxMemory: s.MaxMemory, BatchSize: s.BatchSize}
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level     string `koanf:"level" validate:"loglevel"`
	Format    string `koanf:"format" validate:"oneof=json console"`
	Caller    bool   `koanf:"caller"`
	Timestamp bool   `koanf:"timestamp"`
}

// Logger converts the section for logging.Init.
func (l LoggingConfig) Logger() logging.Config {
	return logging.Config{Level: l.Level, Format: l.Format, Caller: l.Caller, Timestamp: l.Timestamp}
}
