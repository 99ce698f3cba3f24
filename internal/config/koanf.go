// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/cinelex/internal/selector"
	"github.com/tomtom215/cinelex/internal/wikidata"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"cinelex.yaml",
	"cinelex.yml",
	"/etc/cinelex/config.yaml",
	"/etc/cinelex/config.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CINELEX_CONFIG"

// EnvPrefix is the prefix every mapped environment variable carries.
const EnvPrefix = "CINELEX_"

func defaultConfig() *Config {
	wd := wikidata.DefaultConfig()
	return &Config{
		Data: DataConfig{
			Root:          "data",
			Movies:        "movie.metadata.tsv",
			Characters:    "character.metadata.tsv",
			NameClusters:  "name.clusters.txt",
			PlotSummaries: "plot_summaries.txt",
			Ratings:       "title.ratings.tsv",
			Names:         "names.csv",
			Output:        "",
		},
		Clean: CleanConfig{
			Tokenize:        true,
			AlphaOnly:       true,
			Lowercase:       true,
			RemoveStopWords: true,
			NoiseWords:      true,
			Names:           true,
			Lemmatize:       true,
			Stem:            false,
		},
		Cache: CacheConfig{
			Dir: "", // disabled
		},
		Wikidata: WikidataConfig{
			Endpoint:          wd.Endpoint,
			UserAgent:         wd.UserAgent,
			Timeout:           wd.Timeout,
			RequestsPerSecond: wd.RequestsPerSecond,
			BreakerFailures:   wd.BreakerFailures,
			BreakerCooldown:   wd.BreakerCooldown,
			CacheTTL:          7 * 24 * time.Hour,
		},
		Optimize: OptimizeConfig{
			Min:        1,
			Max:        500,
			Step:       1,
			Draws:      100,
			Seed:       0,
			Metric:     "cosine",
			Aggregate:  selector.AggMean,
			Combine:    selector.AggMean,
			Workers:    0, // 0 = runtime.NumCPU()
			Categories: append([]string(nil), selector.DefaultFearCategories...),
		},
		Topics: TopicsConfig{
			Topics:               10,
			Iterations:           50,
			TransformationPasses: 25,
			TopWords:             10,
			TopDocuments:         3,
		},
		Store: StoreConfig{
			Path:      "",
			MaxMemory: "1GB",
			BatchSize: 500,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "console",
			Timestamp: true,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// CINELEX_* environment variables, in increasing priority. A non-empty path
// must exist; an empty path falls back to findConfigFile.
func Load(path string) (*Config, error) {
	k, overrides, err := load(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Optimize.CategoriesSet = overrides.Exists("optimize.categories")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// load returns the merged configuration and, separately, the keys set by the
// file and the environment so callers can tell overrides from defaults.
func load(path string) (*koanf.Koanf, *koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	overrides := koanf.New(".")
	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := overrides.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// CINELEX_DATA_ROOT -> data.root
	if err := overrides.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := k.Merge(overrides); err != nil {
		return nil, nil, fmt.Errorf("failed to merge configuration: %w", err)
	}
	if err := processSliceFields(k); err != nil {
		return nil, nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	return k, overrides, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set through
// the environment.
var sliceConfigPaths = []string{
	"optimize.categories",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMapping maps lower-cased variable names, prefix included, to koanf
// paths. Variables not listed here are ignored.
var envMapping = map[string]string{
	// Data
	"cinelex_data_root":           "data.root",
	"cinelex_data_movies":         "data.movies",
	"cinelex_data_characters":     "data.characters",
	"cinelex_data_name_clusters":  "data.name_clusters",
	"cinelex_data_plot_summaries": "data.plot_summaries",
	"cinelex_data_ratings":        "data.ratings",
	"cinelex_data_names":          "data.names",
	"cinelex_output_dir":          "data.output",

	// Clean
	"cinelex_clean_tokenize":          "clean.tokenize",
	"cinelex_clean_alpha_only":        "clean.alpha_only",
	"cinelex_clean_lowercase":         "clean.lowercase",
	"cinelex_clean_remove_stop_words": "clean.remove_stop_words",
	"cinelex_clean_noise_words":       "clean.noise_words",
	"cinelex_clean_names":             "clean.names",
	"cinelex_clean_lemmatize":         "clean.lemmatize",
	"cinelex_clean_stem":              "clean.stem",
	"cinelex_stop_words_file":         "clean.stop_words_file",

	// Cache
	"cinelex_cache_dir":     "cache.dir",
	"cinelex_cache_force":   "cache.force",
	"cinelex_cache_no_save": "cache.no_save",

	// Wikidata
	"cinelex_wikidata_endpoint":            "wikidata.endpoint",
	"cinelex_wikidata_user_agent":          "wikidata.user_agent",
	"cinelex_wikidata_timeout":             "wikidata.timeout",
	"cinelex_wikidata_requests_per_second": "wikidata.requests_per_second",
	"cinelex_wikidata_breaker_failures":    "wikidata.breaker_failures",
	"cinelex_wikidata_breaker_cooldown":    "wikidata.breaker_cooldown",
	"cinelex_crosswalk_file":               "wikidata.crosswalk_file",
	"cinelex_crosswalk_cache_dir":          "wikidata.cache_dir",
	"cinelex_crosswalk_cache_ttl":          "wikidata.cache_ttl",
	"cinelex_crosswalk_refresh":            "wikidata.refresh",

	// Optimize
	"cinelex_optimize_min":        "optimize.min",
	"cinelex_optimize_max":        "optimize.max",
	"cinelex_optimize_step":       "optimize.step",
	"cinelex_optimize_draws":      "optimize.draws",
	"cinelex_optimize_seed":       "optimize.seed",
	"cinelex_optimize_metric":     "optimize.metric",
	"cinelex_optimize_aggregate":  "optimize.aggregate",
	"cinelex_optimize_combine":    "optimize.combine",
	"cinelex_optimize_workers":    "optimize.workers",
	"cinelex_optimize_categories": "optimize.categories",
	"cinelex_optimize_target":     "optimize.target",

	// Topics
	"cinelex_topics":                       "topics.topics",
	"cinelex_topics_iterations":            "topics.iterations",
	"cinelex_topics_transformation_passes": "topics.transformation_passes",
	"cinelex_topics_workers":               "topics.workers",
	"cinelex_topics_top_words":             "topics.top_words",
	"cinelex_topics_top_documents":         "topics.top_documents",

	// Store
	"cinelex_duckdb_path":       "store.path",
	"cinelex_duckdb_threads":    "store.threads",
	"cinelex_duckdb_max_memory": "store.max_memory",
	"cinelex_duckdb_batch_size": "store.batch_size",

	// Metrics
	"cinelex_metrics_textfile": "metrics.textfile",

	// Logging
	"cinelex_log_level":     "logging.level",
	"cinelex_log_format":    "logging.format",
	"cinelex_log_caller":    "logging.caller",
	"cinelex_log_timestamp": "logging.timestamp",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Returning "" makes koanf skip the variable, which keeps CINELEX_CONFIG
// and unknown names out of the tree.
//
// Examples:
//   - CINELEX_DATA_ROOT -> data.root
//   - CINELEX_DUCKDB_PATH -> store.path
//   - CINELEX_LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	return envMapping[strings.ToLower(key)]
}
