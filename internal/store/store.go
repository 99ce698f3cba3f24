// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/cinelex/internal/logging"
)

// MemoryPath opens a throwaway in-memory database.
const MemoryPath = ":memory:"

// Config selects and tunes the DuckDB file.
type Config struct {
	Path      string `koanf:"path"`
	Threads   int    `koanf:"threads" validate:"gte=0"`
	MaxMemory string `koanf:"max_memory"`
	// BatchSize is the number of rows per INSERT statement.
	BatchSize int `koanf:"batch_size" validate:"gte=0"`
}

// DefaultConfig leaves the store disabled (empty Path).
func DefaultConfig() Config {
	return Config{MaxMemory: "1GB", BatchSize: 500}
}

// Store wraps a DuckDB connection.
type Store struct {
	conn      *sql.DB
	batchSize int
}

// ErrNoPath is returned by Open for an empty Config.Path.
var ErrNoPath = errors.New("store path is empty")

// Open connects to the DuckDB file at cfg.Path, creating it and its parent
// directory when needed, and ensures the corpus tables exist.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, ErrNoPath
	}
	if cfg.Path != MemoryPath {
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
			}
		}
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = DefaultConfig().MaxMemory
	}

	// Extensions are never auto-installed; nothing here needs one.
	connStr := fmt.Sprintf("%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, threads, maxMemory)
	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	s := &Store{conn: conn, batchSize: cfg.BatchSize}
	if s.batchSize <= 0 {
		s.batchSize = DefaultConfig().BatchSize
	}

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}
	if err := s.createTables(ctx); err != nil {
		closeQuietly(conn)
		return nil, err
	}

	logging.Ctx(ctx).Debug().Str("path", cfg.Path).Int("threads", threads).Msg("opened store")
	return s, nil
}

// Close closes the connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// DB exposes the connection for ad-hoc queries.
func (s *Store) DB() *sql.DB { return s.conn }

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From(quoteIdent(table)).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// tableQueries returns the corpus table definitions.
func tableQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS movies (
			wikipedia_id TEXT NOT NULL,
			freebase_id TEXT,
			name TEXT,
			release_year INTEGER,
			revenue DOUBLE,
			runtime DOUBLE,
			languages TEXT,
			countries TEXT,
			genres TEXT,
			summary TEXT,
			rating DOUBLE,
			votes BIGINT,
			run_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS characters (
			wikipedia_id TEXT NOT NULL,
			freebase_id TEXT,
			release_year INTEGER,
			character_name TEXT,
			actor_birth_year INTEGER,
			actor_gender TEXT,
			actor_height DOUBLE,
			actor_ethnicity TEXT,
			actor_name TEXT,
			actor_age DOUBLE,
			character_actor_map_id TEXT,
			character_id TEXT,
			actor_id TEXT,
			run_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS name_clusters (
			name TEXT,
			character_actor_map_id TEXT,
			run_id TEXT
		)`,
	}
}

func (s *Store) createTables(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	for _, query := range tableQueries() {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", firstLine(query), err)
		}
	}
	return nil
}

// quoteIdent quotes a SQL identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("failed to close store connection")
	}
}
