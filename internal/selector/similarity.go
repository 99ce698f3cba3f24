// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package selector

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptySet is returned when a metric receives an empty vector set.
var ErrEmptySet = errors.New("empty vector set")

// Metric scores how alike two sets of category vectors are. Larger means
// more similar. Rows are items, columns are categories in caller order.
type Metric interface {
	Name() string
	Similarity(a, b [][]float64) (float64, error)
}

// MinSetSizer is implemented by metrics that need more than one row per set.
type MinSetSizer interface {
	MinSetSize() int
}

// LookupMetric returns the metric registered under name: "cosine",
// "euclidean" or "hotelling".
func LookupMetric(name string) (Metric, bool) {
	switch name {
	case Cosine{}.Name():
		return Cosine{}, true
	case NegEuclidean{}.Name():
		return NegEuclidean{}, true
	case NegHotelling{}.Name():
		return NegHotelling{}, true
	}
	return nil, false
}

// Cosine is the mean cosine similarity over every (a, b) pair. A pair with a
// zero vector contributes 0.
type Cosine struct{}

func (Cosine) Name() string { return "cosine" }

func (Cosine) Similarity(a, b [][]float64) (float64, error) {
	if err := checkSets(a, b); err != nil {
		return 0, err
	}
	normsB := make([]float64, len(b))
	for j, v := range b {
		normsB[j] = floats.Norm(v, 2)
	}

	var total float64
	for _, u := range a {
		nu := floats.Norm(u, 2)
		for j, v := range b {
			if nu == 0 || normsB[j] == 0 {
				continue
			}
			total += floats.Dot(u, v) / (nu * normsB[j])
		}
	}
	return total / float64(len(a)*len(b)), nil
}

// NegEuclidean is the negative mean Euclidean distance between a[i] and
// b[i], over the shorter set's length.
type NegEuclidean struct{}

func (NegEuclidean) Name() string { return "euclidean" }

func (NegEuclidean) Similarity(a, b [][]float64) (float64, error) {
	if err := checkSets(a, b); err != nil {
		return 0, err
	}
	n := min(len(a), len(b))
	var total float64
	for i := 0; i < n; i++ {
		total += floats.Distance(a[i], b[i], 2)
	}
	return -total / float64(n), nil
}

// NegHotelling is the negative two-sample Hotelling T² statistic:
//
//	T² = n1·n2/(n1+n2) · dᵀ S⁺ d
//
// where d is the difference of the set means and S⁺ the Moore-Penrose
// pseudo-inverse of the pooled covariance. A set with one row contributes
// no covariance. n1+n2 must exceed 2.
type NegHotelling struct{}

func (NegHotelling) Name() string { return "hotelling" }

// MinSetSize is 2 when both sets have equal size.
func (NegHotelling) MinSetSize() int { return 2 }

func (NegHotelling) Similarity(a, b [][]float64) (float64, error) {
	if err := checkSets(a, b); err != nil {
		return 0, err
	}
	n1, n2 := len(a), len(b)
	if n1+n2 <= 2 {
		return 0, fmt.Errorf("hotelling needs more than 2 rows in total, got %d", n1+n2)
	}
	p := len(a[0])

	x1, x2 := toDense(a), toDense(b)
	diff := make([]float64, p)
	for j := 0; j < p; j++ {
		diff[j] = stat.Mean(mat.Col(nil, j, x1), nil) - stat.Mean(mat.Col(nil, j, x2), nil)
	}

	pooled := mat.NewDense(p, p, nil)
	for _, s := range []struct {
		x *mat.Dense
		n int
	}{{x1, n1}, {x2, n2}} {
		if s.n < 2 {
			continue
		}
		var cov mat.SymDense
		stat.CovarianceMatrix(&cov, s.x, nil)
		var scaled mat.Dense
		scaled.Scale(float64(s.n-1), &cov)
		pooled.Add(pooled, &scaled)
	}
	pooled.Scale(1/float64(n1+n2-2), pooled)

	pinv, err := pseudoInverse(pooled)
	if err != nil {
		return 0, err
	}

	d := mat.NewVecDense(p, diff)
	var w mat.VecDense
	w.MulVec(pinv, d)
	t2 := float64(n1*n2) / float64(n1+n2) * mat.Dot(d, &w)
	return -t2, nil
}

func checkSets(a, b [][]float64) error {
	if len(a) == 0 || len(b) == 0 {
		return ErrEmptySet
	}
	p := len(a[0])
	for _, set := range [][][]float64{a, b} {
		for _, v := range set {
			if len(v) != p {
				return fmt.Errorf("vector length %d, want %d", len(v), p)
			}
		}
	}
	return nil
}

func toDense(rows [][]float64) *mat.Dense {
	p := len(rows[0])
	data := make([]float64, 0, len(rows)*p)
	for _, r := range rows {
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), p, data)
}

// machineEpsilon is the float64 unit roundoff, 2^-52.
const machineEpsilon = 0x1p-52

// pseudoInverse computes V·Σ⁺·Uᵀ from a thin SVD. Singular values at or
// below max(r,c)·σmax·ε are treated as zero.
func pseudoInverse(m *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return nil, errors.New("svd factorization failed")
	}
	sv := svd.Values(nil)

	r, c := m.Dims()
	tol := float64(max(r, c)) * floats.Max(sv) * machineEpsilon
	inv := make([]float64, len(sv))
	for i, s := range sv {
		if s > tol {
			inv[i] = 1 / s
		}
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var vs mat.Dense
	vs.Mul(&v, mat.NewDiagDense(len(inv), inv))
	var out mat.Dense
	out.Mul(&vs, u.T())
	return &out, nil
}
