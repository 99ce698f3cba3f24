// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package textclean

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/metrics"
	"github.com/tomtom215/cinelex/internal/models"
	"github.com/tomtom215/cinelex/internal/tabular"
)

// ComputeFunc produces cleaned summaries on a cache miss.
type ComputeFunc func(ctx context.Context) ([]models.PlotSummary, error)

// SummaryCache persists cleaned summaries between runs.
//
// The cache file is keyed by the source path only. A hit is returned as is,
// whatever cleaning options produced it; callers changing options must set
// Force or remove the file.
type SummaryCache struct {
	// Dir holds cache files. Empty disables the cache entirely.
	Dir string
	// Force ignores an existing file and recomputes.
	Force bool
	// NoSave skips writing the recomputed result.
	NoSave bool
}

// Path returns the cache file for source: the source base name plus a hash
// of its absolute path, so equally named sources in different directories
// do not collide.
func (c SummaryCache) Path(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", source, err)
	}
	base := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	sum := strconv.FormatUint(xxhash.Sum64String(abs), 16)
	return filepath.Join(c.Dir, base+"-"+sum+".clean.tsv"), nil
}

// Load returns the cached summaries for source, or runs compute and stores
// its result.
func (c SummaryCache) Load(ctx context.Context, source string, compute ComputeFunc) ([]models.PlotSummary, error) {
	log := logging.Ctx(ctx).With().Str("source", source).Logger()

	if c.Dir == "" {
		metrics.SummaryCacheLookups.WithLabelValues("disabled").Inc()
		return compute(ctx)
	}

	path, err := c.Path(source)
	if err != nil {
		return nil, err
	}

	if c.Force {
		metrics.SummaryCacheLookups.WithLabelValues("bypass").Inc()
	} else {
		rows, err := readCache(path)
		switch {
		case err == nil:
			metrics.SummaryCacheLookups.WithLabelValues("hit").Inc()
			log.Info().Str("cache", path).Int("rows", len(rows)).Msg("using cached cleaned summaries")
			return rows, nil
		case errors.Is(err, fs.ErrNotExist):
			metrics.SummaryCacheLookups.WithLabelValues("miss").Inc()
		default:
			return nil, fmt.Errorf("read summary cache: %w", err)
		}
	}

	rows, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	if c.NoSave {
		return rows, nil
	}

	var buf bytes.Buffer
	if err := tabular.WriteCleanSummaries(&buf, rows); err != nil {
		return nil, fmt.Errorf("encode summary cache: %w", err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("write summary cache: %w", err)
	}
	log.Info().Str("cache", path).Int("rows", len(rows)).Msg("saved cleaned summaries")
	return rows, nil
}

func readCache(path string) ([]models.PlotSummary, error) {
	f, err := os.Open(path) //nolint:gosec // path is derived from configuration
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tabular.ReadCleanSummaries(f)
}

// writeFileAtomic writes data to a temp file in the target directory, syncs
// it and renames it over path, so readers see either the old file or the
// complete new one.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	tmpName = ""
	return nil
}
