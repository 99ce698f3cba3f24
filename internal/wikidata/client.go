// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package wikidata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/metrics"
	"github.com/tomtom215/cinelex/internal/models"
)

// DefaultEndpoint is the public Wikidata SPARQL endpoint.
const DefaultEndpoint = "https://query.wikidata.org/sparql"

// CrosswalkQuery selects every item with an IMDb ID and, when present, its
// Freebase ID.
const CrosswalkQuery = `SELECT ?item ?tconst ?freebaseID WHERE {
  ?item wdt:P345 ?tconst.
  OPTIONAL {?item wdt:P646 ?freebaseID}
}`

// ErrUnavailable is returned when the endpoint cannot be reached or answers
// with anything but a well-formed result set.
var ErrUnavailable = errors.New("crosswalk endpoint unavailable")

// Resolver produces the identifier crosswalk.
type Resolver interface {
	Resolve(ctx context.Context) ([]models.Crosswalk, error)
}

// Config configures a Client.
type Config struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond paces requests; zero or less disables pacing.
	RequestsPerSecond float64
	// BreakerFailures is the number of consecutive failures that opens the
	// breaker.
	BreakerFailures uint32
	// BreakerCooldown is how long the breaker stays open.
	BreakerCooldown time.Duration
}

// DefaultConfig returns a Config for the public endpoint.
func DefaultConfig() Config {
	return Config{
		Endpoint:          DefaultEndpoint,
		UserAgent:         "cinelex/1.0 (https://github.com/tomtom215/cinelex)",
		Timeout:           2 * time.Minute,
		RequestsPerSecond: 1,
		BreakerFailures:   3,
		BreakerCooldown:   5 * time.Minute,
	}
}

// Client queries a SPARQL endpoint for the crosswalk.
//
// The breaker uses real time for its cooldown; tests exercise it with a
// short BreakerCooldown rather than a fake clock.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]models.Crosswalk]
}

const breakerName = "wikidata-sparql"

// NewClient creates a Client. Zero fields of cfg fall back to DefaultConfig.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = def.BreakerFailures
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = def.BreakerCooldown
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	failures := cfg.BreakerFailures
	cb := gobreaker.NewCircuitBreaker[[]models.Crosswalk](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= failures
			if trip {
				logging.Warn().Uint32("failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordBreakerTransition(name, from, to, int(to))
		},
	})

	return &Client{
		cfg:     cfg,
		http:    &http.Client{},
		limiter: rate.NewLimiter(limit, 1),
		cb:      cb,
	}
}

// State returns the breaker state.
func (c *Client) State() gobreaker.State {
	return c.cb.State()
}

// Resolve runs the crosswalk query once.
func (c *Client) Resolve(ctx context.Context) ([]models.Crosswalk, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	start := time.Now()
	pairs, err := c.cb.Execute(func() ([]models.Crosswalk, error) {
		return c.query(ctx)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordCrosswalk("remote", "rejected", time.Since(start))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	case err != nil:
		metrics.RecordCrosswalk("remote", "failure", time.Since(start))
		return nil, err
	}

	metrics.RecordCrosswalk("remote", "success", time.Since(start))
	metrics.CrosswalkPairs.Set(float64(len(pairs)))
	logging.Ctx(ctx).Info().
		Int("pairs", len(pairs)).
		Dur("elapsed", time.Since(start)).
		Msg("resolved identifier crosswalk")
	return pairs, nil
}

func (c *Client) query(ctx context.Context) ([]models.Crosswalk, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("query", CrosswalkQuery)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create crosswalk request: %w", err)
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrUnavailable, resp.StatusCode, snippet)
	}

	pairs, err := decodeBindings(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return pairs, nil
}

type binding struct {
	Value string `json:"value"`
}

type sparqlResponse struct {
	Results *struct {
		Bindings []struct {
			Tconst     *binding `json:"tconst"`
			FreebaseID *binding `json:"freebaseID"`
		} `json:"bindings"`
	} `json:"results"`
}

// decodeBindings reads a SPARQL JSON result set. Bindings without a tconst
// are skipped; a missing freebaseID yields an empty FreebaseID.
func decodeBindings(r io.Reader) ([]models.Crosswalk, error) {
	var body sparqlResponse
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode crosswalk response: %w", err)
	}
	if body.Results == nil {
		return nil, errors.New("decode crosswalk response: no results object")
	}

	out := make([]models.Crosswalk, 0, len(body.Results.Bindings))
	for _, b := range body.Results.Bindings {
		if b.Tconst == nil || b.Tconst.Value == "" {
			continue
		}
		pair := models.Crosswalk{Tconst: b.Tconst.Value}
		if b.FreebaseID != nil {
			pair.FreebaseID = b.FreebaseID.Value
		}
		out = append(out, pair)
	}
	return out, nil
}
