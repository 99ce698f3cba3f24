// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package selector

import (
	"math"
	"slices"
	"sort"
)

// Aggregator reduces a non-empty slice of similarities to one value.
type Aggregator func(values []float64) float64

// Aggregator names accepted by Params.Aggregate and Params.Combine.
const (
	AggMax    = "max"
	AggMin    = "min"
	AggMean   = "mean"
	AggMedian = "median"
	AggSum    = "sum"
)

var aggregators = map[string]Aggregator{
	AggMax:    aggMax,
	AggMin:    aggMin,
	AggMean:   aggMean,
	AggMedian: aggMedian,
	AggSum:    aggSum,
}

// AggregatorNames lists the registered aggregators in sorted order.
func AggregatorNames() []string {
	names := make([]string, 0, len(aggregators))
	for name := range aggregators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupAggregator returns the aggregator registered under name.
func LookupAggregator(name string) (Aggregator, bool) {
	agg, ok := aggregators[name]
	return agg, ok
}

// NaN propagates through every aggregator.

func aggMax(v []float64) float64 {
	out := math.Inf(-1)
	for _, x := range v {
		if math.IsNaN(x) {
			return x
		}
		out = math.Max(out, x)
	}
	return out
}

func aggMin(v []float64) float64 {
	out := math.Inf(1)
	for _, x := range v {
		if math.IsNaN(x) {
			return x
		}
		out = math.Min(out, x)
	}
	return out
}

func aggSum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

func aggMean(v []float64) float64 {
	return aggSum(v) / float64(len(v))
}

func aggMedian(v []float64) float64 {
	for _, x := range v {
		if math.IsNaN(x) {
			return x
		}
	}
	s := slices.Clone(v)
	slices.Sort(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
