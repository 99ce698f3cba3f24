// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package selector

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b [][]float64
		want float64
	}{
		{"identical", [][]float64{{1, 0}}, [][]float64{{1, 0}}, 1},
		{"orthogonal", [][]float64{{1, 0}}, [][]float64{{0, 1}}, 0},
		{"scale invariant", [][]float64{{2, 2}}, [][]float64{{5, 5}}, 1},
		{"mean over pairs", [][]float64{{1, 0}}, [][]float64{{1, 0}, {0, 1}}, 0.5},
		{"zero vector", [][]float64{{0, 0}}, [][]float64{{1, 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine{}.Similarity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Similarity: %v", err)
			}
			if !approx(got, tt.want) {
				t.Errorf("Similarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNegEuclidean(t *testing.T) {
	got, err := NegEuclidean{}.Similarity(
		[][]float64{{0, 0}, {1, 1}},
		[][]float64{{3, 4}, {1, 1}},
	)
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if !approx(got, -2.5) {
		t.Errorf("Similarity = %v, want -2.5", got)
	}

	same, _ := NegEuclidean{}.Similarity([][]float64{{1, 2}}, [][]float64{{1, 2}})
	if same != 0 {
		t.Errorf("identical sets = %v, want 0", same)
	}
}

func TestNegHotelling(t *testing.T) {
	tests := []struct {
		name string
		a, b [][]float64
		want float64
	}{
		{
			name: "one dimension",
			a:    [][]float64{{0}, {2}},
			b:    [][]float64{{4}, {6}},
			want: -8,
		},
		{
			// The constant second column makes the pooled covariance
			// singular; the pseudo-inverse ignores it.
			name: "singular covariance",
			a:    [][]float64{{0, 1}, {2, 1}},
			b:    [][]float64{{4, 1}, {6, 1}},
			want: -8,
		},
		{
			name: "identical sets",
			a:    [][]float64{{1, 2}, {3, 5}, {2, 2}},
			b:    [][]float64{{1, 2}, {3, 5}, {2, 2}},
			want: 0,
		},
		{
			name: "singleton set adds no covariance",
			a:    [][]float64{{1}},
			b:    [][]float64{{4}, {6}},
			want: -(2.0 / 3.0) * 16 / 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NegHotelling{}.Similarity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Similarity: %v", err)
			}
			if !approx(got, tt.want) {
				t.Errorf("Similarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNegHotelling_TooFewRows(t *testing.T) {
	if _, err := (NegHotelling{}).Similarity([][]float64{{1}}, [][]float64{{2}}); err == nil {
		t.Error("expected error for one row per set")
	}
}

func TestMetrics_BadInput(t *testing.T) {
	for _, m := range []Metric{Cosine{}, NegEuclidean{}, NegHotelling{}} {
		t.Run(m.Name(), func(t *testing.T) {
			if _, err := m.Similarity(nil, [][]float64{{1}}); !errors.Is(err, ErrEmptySet) {
				t.Errorf("empty set: err = %v, want ErrEmptySet", err)
			}
			if _, err := m.Similarity([][]float64{{1, 2}, {1, 2}}, [][]float64{{1}, {2}}); err == nil {
				t.Error("mismatched vector lengths: want error")
			}
		})
	}
}

func TestLookupMetric(t *testing.T) {
	for _, name := range []string{"cosine", "euclidean", "hotelling"} {
		m, ok := LookupMetric(name)
		if !ok || m.Name() != name {
			t.Errorf("LookupMetric(%q) = %v, %v", name, m, ok)
		}
	}
	if _, ok := LookupMetric("manhattan"); ok {
		t.Error("LookupMetric(manhattan) should fail")
	}
}
