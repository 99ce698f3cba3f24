// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package selector

import (
	"errors"
	"fmt"
)

// ErrEmptyRange is wrapped by the ConfigurationError returned for a range
// that contains no candidate size.
var ErrEmptyRange = errors.New("empty range")

// ErrNoMinimum is returned when every point of the curve is NaN.
var ErrNoMinimum = errors.New("similarity curve has no finite minimum")

// ConfigurationError reports an invalid optimizer parameter.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("selector: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func configErr(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
