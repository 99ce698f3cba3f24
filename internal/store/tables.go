// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/metrics"
	"github.com/tomtom215/cinelex/internal/models"
)

var (
	movieColumns = []string{
		"wikipedia_id", "freebase_id", "name", "release_year", "revenue", "runtime",
		"languages", "countries", "genres", "summary", "rating", "votes", "run_id",
	}
	characterColumns = []string{
		"wikipedia_id", "freebase_id", "release_year", "character_name", "actor_birth_year",
		"actor_gender", "actor_height", "actor_ethnicity", "actor_name", "actor_age",
		"character_actor_map_id", "character_id", "actor_id", "run_id",
	}
	clusterColumns = []string{"name", "character_actor_map_id", "run_id"}
)

// WriteTables replaces the movies, characters and name_clusters tables with
// tables. Every row is tagged with runID.
func (s *Store) WriteTables(ctx context.Context, tables models.Tables, runID string) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"movies", "characters", "name_clusters"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	movieRows := make([][]any, len(tables.Movies))
	for i := range tables.Movies {
		row, err := movieRow(&tables.Movies[i], runID)
		if err != nil {
			return err
		}
		movieRows[i] = row
	}
	if err := s.insert(ctx, tx, "movies", movieColumns, movieRows); err != nil {
		return err
	}

	charRows := make([][]any, len(tables.Characters))
	for i := range tables.Characters {
		charRows[i] = characterRow(&tables.Characters[i], runID)
	}
	if err := s.insert(ctx, tx, "characters", characterColumns, charRows); err != nil {
		return err
	}

	clusterRows := make([][]any, len(tables.NameClusters))
	for i, c := range tables.NameClusters {
		clusterRows[i] = []any{c.Name, c.CharacterActorMapID, runID}
	}
	if err := s.insert(ctx, tx, "name_clusters", clusterColumns, clusterRows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	logging.Ctx(ctx).Info().
		Int("movies", len(movieRows)).
		Int("characters", len(charRows)).
		Int("name_clusters", len(clusterRows)).
		Msg("wrote tables to store")
	return nil
}

// insert writes rows in multi-row INSERT statements of at most batchSize.
func (s *Store) insert(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	for start := 0; start < len(rows); start += s.batchSize {
		end := min(start+s.batchSize, len(rows))

		b := sq.Insert(quoteIdent(table)).Columns(quoteAll(columns)...).PlaceholderFormat(sq.Question)
		for _, row := range rows[start:end] {
			b = b.Values(row...)
		}
		query, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("build insert into %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	metrics.StoreRowsWritten.WithLabelValues(table).Add(float64(len(rows)))
	return nil
}

func movieRow(m *models.MovieRecord, runID string) ([]any, error) {
	langs, err := jsonText(m.Languages)
	if err != nil {
		return nil, err
	}
	countries, err := jsonText(m.Countries)
	if err != nil {
		return nil, err
	}
	genres, err := jsonText(m.Genres)
	if err != nil {
		return nil, err
	}
	return []any{
		m.WikipediaID, m.FreebaseID, m.Name,
		nullInt(m.ReleaseYear), nullFloat(m.Revenue), nullFloat(m.Runtime),
		langs, countries, genres,
		nullString(m.Summary), nullFloat(m.Rating), nullInt64(m.Votes),
		runID,
	}, nil
}

func characterRow(c *models.CharacterRecord, runID string) []any {
	return []any{
		c.WikipediaID, c.FreebaseID, nullInt(c.ReleaseYear), c.CharacterName,
		nullInt(c.ActorBirthYear), c.ActorGender, nullFloat(c.ActorHeight),
		c.ActorEthnicity, c.ActorName, nullFloat(c.ActorAge),
		c.CharacterActorMapID, c.CharacterID, c.ActorID, runID,
	}
}

// ReadMovies returns the stored movies in insertion order.
func (s *Store) ReadMovies(ctx context.Context) ([]models.MovieRecord, error) {
	query, args, err := sq.Select(quoteAll(movieColumns[:12])...).From("movies").OrderBy("rowid").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var out []models.MovieRecord
	for rows.Next() {
		var (
			m                        models.MovieRecord
			freebase, name           sql.NullString
			year                     sql.NullInt64
			revenue, runtime, rating sql.NullFloat64
			langs, countries, genres sql.NullString
			summary                  sql.NullString
			votes                    sql.NullInt64
		)
		if err := rows.Scan(&m.WikipediaID, &freebase, &name, &year, &revenue, &runtime,
			&langs, &countries, &genres, &summary, &rating, &votes); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		m.FreebaseID, m.Name = freebase.String, name.String
		if year.Valid {
			y := int(year.Int64)
			m.ReleaseYear = &y
		}
		m.Revenue, m.Runtime, m.Rating = floatPtr(revenue), floatPtr(runtime), floatPtr(rating)
		if summary.Valid {
			m.Summary = &summary.String
		}
		if votes.Valid {
			m.Votes = &votes.Int64
		}
		if m.Languages, err = fromJSONText(langs); err != nil {
			return nil, err
		}
		if m.Countries, err = fromJSONText(countries); err != nil {
			return nil, err
		}
		if m.Genres, err = fromJSONText(genres); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = quoteIdent(n)
	}
	return out
}

// jsonText encodes a list column. nil stays NULL.
func jsonText(values []string) (any, error) {
	if values == nil {
		return nil, nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func fromJSONText(v sql.NullString) ([]string, error) {
	if !v.Valid {
		return nil, nil
	}
	out := []string{}
	if err := json.Unmarshal([]byte(v.String), &out); err != nil {
		return nil, fmt.Errorf("decode list column: %w", err)
	}
	return out, nil
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
