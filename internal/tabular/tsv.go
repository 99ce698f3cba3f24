// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package tabular

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single line; the longest plot summaries run to a few
// hundred kilobytes.
const maxLineBytes = 16 << 20

// RowFunc receives a 1-based line number and the tab-split fields of a line.
// The fields slice is only valid for the duration of the call.
type RowFunc func(line int, fields []string) error

// ScanTSV splits every non-empty line of r on tabs and hands it to fn.
// Trailing carriage returns are trimmed.
func ScanTSV(r io.Reader, fn RowFunc) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			continue
		}
		if err := fn(line, strings.Split(text, "\t")); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan after line %d: %w", line, err)
	}
	return nil
}

// ScanFile opens path and runs ScanTSV over it.
func ScanFile(path string, fn RowFunc) error {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return err
	}
	defer f.Close()

	if err := ScanTSV(f, fn); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// field returns fields[i], or "" for short rows.
func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// optFloat parses a float cell. Empty or malformed cells are nil.
func optFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// optText returns nil for an empty cell.
func optText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// WriteTSV writes a header and rows joined by tabs. Cells must not contain
// tabs or newlines.
func WriteTSV(w io.Writer, header []string, rows [][]string) error {
	bw := bufio.NewWriter(w)
	if header != nil {
		if _, err := bw.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// sanitize replaces tabs and line breaks so a value fits in one TSV cell.
func sanitize(s string) string {
	return strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(s)
}
