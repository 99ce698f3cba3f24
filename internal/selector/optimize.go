// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package selector

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/metrics"
	"github.com/tomtom215/cinelex/internal/models"
	"github.com/tomtom215/cinelex/internal/validation"
)

// Range is an inclusive sequence of candidate subset sizes.
type Range struct {
	Min  int `koanf:"min"`
	Max  int `koanf:"max"`
	Step int `koanf:"step"`
}

// Sizes expands the range. A zero Step means 1.
func (r Range) Sizes() []int {
	step := r.Step
	if step == 0 {
		step = 1
	}
	var out []int
	for k := r.Min; k <= r.Max && step > 0; k += step {
		out = append(out, k)
	}
	return out
}

// Params configures TopOptimize and TopOptimizeAll.
type Params struct {
	Range Range

	// Draws is the number of random baselines per candidate size.
	Draws int `validate:"gt=0"`

	// Seed of baseline draw d is Seed+d, the same for every k.
	Seed int64

	Metric Metric `validate:"required"`

	// Aggregate reduces the per-baseline similarities of one k.
	Aggregate string `validate:"required"`

	// Combine reduces per-category values in TopOptimizeAll.
	Combine string

	// Workers bounds concurrent candidate sizes. Zero means GOMAXPROCS.
	Workers int `validate:"gte=0"`
}

// Point is one sample of a similarity curve.
type Point struct {
	K          int     `json:"k"`
	Similarity float64 `json:"similarity"`
}

// Result is the outcome of a single-category search.
type Result struct {
	K     int                 `json:"k"`
	Items []models.ScoredItem `json:"items"`
	Curve []Point             `json:"curve"`
}

// MultiResult is the outcome of a multi-category search. Subsets holds the
// top-K items of each category; PerCategory the uncombined curves.
type MultiResult struct {
	K           int                            `json:"k"`
	Subsets     map[string][]models.ScoredItem `json:"subsets"`
	Curve       []Point                        `json:"curve"`
	PerCategory map[string][]Point             `json:"per_category"`
}

// TopOptimize searches Range for the k whose top-k items by target are
// least similar to Draws random size-k baselines, comparing vectors over
// categories.
func TopOptimize(ctx context.Context, items []models.ScoredItem, target string, categories []string, p Params) (Result, error) {
	agg, err := p.validate(items, categories, false)
	if err != nil {
		return Result{}, err
	}
	if !contains(categories, target) {
		return Result{}, configErr("target", "%q is not among the categories", target)
	}

	start := time.Now()
	defer func() {
		metrics.OptimizerRunDuration.WithLabelValues("single").Observe(time.Since(start).Seconds())
	}()

	s := newSearch(items, categories, p, agg)
	order := s.ranked(target)
	sizes := p.Range.Sizes()

	values, err := s.forEachK(ctx, sizes, func(k int) (float64, error) {
		return s.evaluate(order, k)
	})
	if err != nil {
		return Result{}, err
	}

	best, err := argmin(values)
	if err != nil {
		return Result{}, err
	}
	k := sizes[best]

	logging.Ctx(ctx).Debug().
		Str("target", target).
		Str("metric", p.Metric.Name()).
		Int("k", k).
		Float64("similarity", values[best]).
		Msg("selected subset size")

	return Result{
		K:     k,
		Items: pick(items, order[:k]),
		Curve: curve(sizes, values),
	}, nil
}

// TopOptimizeAll runs the single-category evaluation for every category at
// each k and combines the per-category values with Params.Combine.
func TopOptimizeAll(ctx context.Context, items []models.ScoredItem, categories []string, p Params) (MultiResult, error) {
	agg, err := p.validate(items, categories, true)
	if err != nil {
		return MultiResult{}, err
	}
	combine, _ := LookupAggregator(p.Combine)

	start := time.Now()
	defer func() {
		metrics.OptimizerRunDuration.WithLabelValues("multi").Observe(time.Since(start).Seconds())
	}()

	s := newSearch(items, categories, p, agg)
	orders := make([][]int, len(categories))
	for i, c := range categories {
		orders[i] = s.ranked(c)
	}
	sizes := p.Range.Sizes()

	perCat := make([][]float64, len(sizes))
	values, err := s.forEachK(ctx, sizes, func(k int) (float64, error) {
		row := make([]float64, len(categories))
		for i := range categories {
			v, err := s.evaluate(orders[i], k)
			if err != nil {
				return 0, err
			}
			row[i] = v
		}
		perCat[s.index[k]] = row
		return combine(row), nil
	})
	if err != nil {
		return MultiResult{}, err
	}

	best, err := argmin(values)
	if err != nil {
		return MultiResult{}, err
	}
	k := sizes[best]

	res := MultiResult{
		K:           k,
		Subsets:     make(map[string][]models.ScoredItem, len(categories)),
		Curve:       curve(sizes, values),
		PerCategory: make(map[string][]Point, len(categories)),
	}
	for i, c := range categories {
		res.Subsets[c] = pick(items, orders[i][:k])
		col := make([]float64, len(sizes))
		for j := range sizes {
			col[j] = perCat[j][i]
		}
		res.PerCategory[c] = curve(sizes, col)
	}

	logging.Ctx(ctx).Debug().
		Strs("categories", categories).
		Str("metric", p.Metric.Name()).
		Int("k", k).
		Float64("similarity", values[best]).
		Msg("selected subset size")
	return res, nil
}

// validate checks p against items and categories and resolves the
// aggregator.
func (p Params) validate(items []models.ScoredItem, categories []string, multi bool) (Aggregator, error) {
	if err := validation.ValidateStruct(&p); err != nil {
		fe := err.First()
		return nil, &ConfigurationError{Field: strings.ToLower(fe.Field()), Reason: fe.Error(), Err: err}
	}
	if len(items) == 0 {
		return nil, configErr("items", "no items to select from")
	}
	if len(categories) == 0 {
		return nil, configErr("categories", "no categories given")
	}
	for _, it := range items {
		for _, c := range categories {
			if _, ok := it.Scores[c]; !ok {
				return nil, configErr("categories", "item %q has no score for %q", it.ID, c)
			}
		}
	}

	r := p.Range
	switch {
	case r.Step < 0:
		return nil, configErr("range", "step %d is negative", r.Step)
	case r.Min > r.Max:
		return nil, &ConfigurationError{Field: "range", Reason: fmt.Sprintf("inverted range [%d, %d]", r.Min, r.Max), Err: ErrEmptyRange}
	case r.Min < 1:
		return nil, configErr("range", "minimum size %d is below 1", r.Min)
	case r.Max > len(items):
		return nil, configErr("range", "maximum size %d exceeds %d items", r.Max, len(items))
	}
	if ms, ok := p.Metric.(MinSetSizer); ok && r.Min < ms.MinSetSize() {
		return nil, configErr("range", "%s needs subsets of at least %d items", p.Metric.Name(), ms.MinSetSize())
	}

	agg, ok := LookupAggregator(p.Aggregate)
	if !ok {
		return nil, configErr("aggregate", "unknown aggregator %q (want one of %s)", p.Aggregate, strings.Join(AggregatorNames(), ", "))
	}
	if multi {
		if _, ok := LookupAggregator(p.Combine); !ok {
			return nil, configErr("combine", "unknown aggregator %q (want one of %s)", p.Combine, strings.Join(AggregatorNames(), ", "))
		}
	}
	return agg, nil
}

// search holds the per-run state shared by every k.
type search struct {
	vectors [][]float64
	items   []models.ScoredItem
	params  Params
	agg     Aggregator
	index   map[int]int
}

func newSearch(items []models.ScoredItem, categories []string, p Params, agg Aggregator) *search {
	vectors := make([][]float64, len(items))
	for i, it := range items {
		vectors[i] = it.Vector(categories)
	}
	sizes := p.Range.Sizes()
	index := make(map[int]int, len(sizes))
	for i, k := range sizes {
		index[k] = i
	}
	return &search{vectors: vectors, items: items, params: p, agg: agg, index: index}
}

// ranked returns item indices ordered by descending score on category,
// ties in input order.
func (s *search) ranked(category string) []int {
	return rankIndices(s.items, category)
}

// evaluate aggregates the similarity between the top-k of order and every
// baseline draw.
func (s *search) evaluate(order []int, k int) (float64, error) {
	top := s.rows(order[:k])
	sims := make([]float64, s.params.Draws)
	for d := 0; d < s.params.Draws; d++ {
		rng := rand.New(rand.NewSource(s.params.Seed + int64(d))) //nolint:gosec // reproducible sampling, not security
		baseline := s.rows(rng.Perm(len(s.vectors))[:k])
		sim, err := s.params.Metric.Similarity(top, baseline)
		if err != nil {
			return 0, fmt.Errorf("k=%d draw=%d: %w", k, d, err)
		}
		sims[d] = sim
	}
	metrics.OptimizerEvaluations.WithLabelValues(s.params.Metric.Name()).Add(float64(s.params.Draws))
	return s.agg(sims), nil
}

func (s *search) rows(idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = s.vectors[j]
	}
	return out
}

// forEachK runs fn for every size on a bounded pool. values[i] belongs to
// sizes[i] regardless of completion order. The first error by size order
// is returned.
func (s *search) forEachK(ctx context.Context, sizes []int, fn func(k int) (float64, error)) ([]float64, error) {
	workers := s.params.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	values := make([]float64, len(sizes))
	errs := make([]error, len(sizes))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, k := range sizes {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		sem <- struct{}{}

		go func(i, k int) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			values[i], errs[i] = fn(k)
		}(i, k)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

// argmin returns the index of the smallest non-NaN value, first occurrence
// on ties.
func argmin(values []float64) (int, error) {
	best := -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || v < values[best] {
			best = i
		}
	}
	if best < 0 {
		return 0, ErrNoMinimum
	}
	return best, nil
}

func curve(sizes []int, values []float64) []Point {
	out := make([]Point, len(sizes))
	for i, k := range sizes {
		out[i] = Point{K: k, Similarity: values[i]}
	}
	return out
}

func pick(items []models.ScoredItem, idx []int) []models.ScoredItem {
	out := make([]models.ScoredItem, len(idx))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
