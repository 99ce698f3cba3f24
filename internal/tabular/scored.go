// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package tabular

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tomtom215/cinelex/internal/models"
)

// ErrBadScore is returned when a category score cell is not a number.
var ErrBadScore = errors.New("invalid category score")

// ReadScoredItems reads a headed TSV whose first column is the item ID, an
// optional "name" column, and one numeric column per category. It returns
// the items and the category labels in header order.
func ReadScoredItems(r io.Reader) ([]models.ScoredItem, []string, error) {
	var (
		items      []models.ScoredItem
		categories []string
		nameCol    = -1
		firstCat   = 1
	)
	err := ScanTSV(r, func(line int, f []string) error {
		if line == 1 {
			if len(f) < 2 || !strings.EqualFold(f[0], "id") {
				return fmt.Errorf("%w: first column must be id", ErrBadHeader)
			}
			if strings.EqualFold(f[1], "name") {
				nameCol, firstCat = 1, 2
			}
			categories = append(categories, f[firstCat:]...)
			return nil
		}
		item := models.ScoredItem{
			ID:     f[0],
			Scores: make(map[string]float64, len(categories)),
		}
		if nameCol >= 0 {
			item.Name = field(f, nameCol)
		}
		for i, c := range categories {
			cell := strings.TrimSpace(field(f, firstCat+i))
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrBadScore, c, cell)
			}
			item.Scores[c] = v
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return items, categories, nil
}
