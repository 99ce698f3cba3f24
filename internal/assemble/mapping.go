// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package assemble

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// MappingValues decodes a serialized Freebase mapping such as
// {"/m/02h40lc": "English Language", "/m/09c7w0": "United States"} and
// returns its values in document order. Keys are discarded. A value that is
// not a JSON object yields nil.
func MappingValues(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	dec := json.NewDecoder(strings.NewReader(s))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil
	}

	values := []string{}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil
		}
		switch tv := v.(type) {
		case string:
			values = append(values, tv)
		case nil:
			values = append(values, "")
		default:
			values = append(values, fmt.Sprint(tv))
		}
	}
	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil
	}
	return values
}
