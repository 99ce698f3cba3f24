// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/tomtom215/cinelex/internal/models"
)

// ScoredTable names a scored-item table and its columns.
type ScoredTable struct {
	Table      string   `koanf:"table"`
	IDColumn   string   `koanf:"id_column"`
	NameColumn string   `koanf:"name_column"`
	Categories []string `koanf:"categories"`
}

// WriteScoredItems (re)creates t.Table and fills it with items. A category
// missing from an item is stored as NULL.
func (s *Store) WriteScoredItems(ctx context.Context, t ScoredTable, items []models.ScoredItem) error {
	if err := t.check(); err != nil {
		return err
	}

	cols := []string{t.IDColumn}
	defs := []string{quoteIdent(t.IDColumn) + " TEXT NOT NULL"}
	if t.NameColumn != "" {
		cols = append(cols, t.NameColumn)
		defs = append(defs, quoteIdent(t.NameColumn)+" TEXT")
	}
	for _, c := range t.Categories {
		cols = append(cols, c)
		defs = append(defs, quoteIdent(c)+" DOUBLE")
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	create := fmt.Sprintf("CREATE OR REPLACE TABLE %s (%s)", quoteIdent(t.Table), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create %s: %w", t.Table, err)
	}

	rows := make([][]any, len(items))
	for i, it := range items {
		row := []any{it.ID}
		if t.NameColumn != "" {
			row = append(row, it.Name)
		}
		for _, c := range t.Categories {
			if v, ok := it.Score(c); ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		rows[i] = row
	}
	if err := s.insert(ctx, tx, t.Table, cols, rows); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadScoredItems reads t.Table in insertion order. NULL scores are left
// out of the item's Scores map.
func (s *Store) LoadScoredItems(ctx context.Context, t ScoredTable) ([]models.ScoredItem, error) {
	if err := t.check(); err != nil {
		return nil, err
	}

	cols := []string{quoteIdent(t.IDColumn)}
	if t.NameColumn != "" {
		cols = append(cols, quoteIdent(t.NameColumn))
	}
	cols = append(cols, quoteAll(t.Categories)...)

	query, args, err := sq.Select(cols...).From(quoteIdent(t.Table)).OrderBy("rowid").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.Table, err)
	}
	defer rows.Close()

	var out []models.ScoredItem
	for rows.Next() {
		var (
			id     string
			name   sql.NullString
			scores = make([]sql.NullFloat64, len(t.Categories))
		)
		dest := []any{&id}
		if t.NameColumn != "" {
			dest = append(dest, &name)
		}
		for i := range scores {
			dest = append(dest, &scores[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.Table, err)
		}

		item := models.ScoredItem{ID: id, Name: name.String, Scores: make(map[string]float64, len(t.Categories))}
		for i, c := range t.Categories {
			if scores[i].Valid {
				item.Scores[c] = scores[i].Float64
			}
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ScoreColumns lists the DOUBLE columns of table, in table order, for
// callers that want every category a table carries.
func (s *Store) ScoreColumns(ctx context.Context, table string) ([]string, error) {
	query, args, err := sq.Select("column_name").
		From("information_schema.columns").
		Where(sq.Eq{"table_name": table, "data_type": "DOUBLE"}).
		OrderBy("ordinal_position").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", table, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (t ScoredTable) check() error {
	switch {
	case t.Table == "":
		return fmt.Errorf("scored table name is empty")
	case t.IDColumn == "":
		return fmt.Errorf("scored table %s: id column is empty", t.Table)
	case len(t.Categories) == 0:
		return fmt.Errorf("scored table %s: no categories", t.Table)
	}
	return nil
}
