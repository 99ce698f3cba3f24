// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/cinelex/internal/validation"
)

// Validate runs the struct-tag rules and then the checks that span fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateWikidata(); err != nil {
		return err
	}

	return c.validateOptimize()
}

func (c *Config) validateWikidata() error {
	// An offline crosswalk file never touches the endpoint.
	if c.Wikidata.CrosswalkFile != "" {
		return nil
	}
	if err := validateHTTPURL(c.Wikidata.Endpoint, "wikidata.endpoint"); err != nil {
		return err
	}
	if containsPlaceholder(c.Wikidata.UserAgent) {
		return fmt.Errorf("wikidata.user_agent contains a placeholder value; set a real contact")
	}
	return nil
}

func (c *Config) validateOptimize() error {
	seen := make(map[string]bool, len(c.Optimize.Categories))
	for _, cat := range c.Optimize.Categories {
		if seen[cat] {
			return fmt.Errorf("optimize.categories lists %q twice", cat)
		}
		seen[cat] = true
	}
	if c.Optimize.Target != "" && !seen[c.Optimize.Target] {
		return fmt.Errorf("optimize.target %q is not one of optimize.categories", c.Optimize.Target)
	}
	return nil
}

// validateHTTPURL checks scheme and host. Paths are allowed since SPARQL
// endpoints live below the root.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}

var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_EMAIL",
	"PLACEHOLDER",
	"EXAMPLE.COM",
}

func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
