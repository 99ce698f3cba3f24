// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

// Package validation wraps a shared go-playground/validator instance.
//
// The validator is built once and caches struct metadata, so configuration
// loading and optimizer parameter checks share it. Custom tags:
//
//   - loglevel: a level name accepted by logging.Init ("off" included)
//   - dirpath_or_empty: empty, or a path that is not an existing regular file
//
// Example:
//
//	type Section struct {
//	    Draws int    `validate:"gt=0"`
//	    Level string `validate:"loglevel"`
//	}
//
//	if err := validation.ValidateStruct(&s); err != nil {
//	    for _, fe := range err.Errors() {
//	        fmt.Println(fe.Namespace(), fe.Error())
//	    }
//	}
package validation
