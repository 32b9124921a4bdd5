// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/go-gglayer/render"
)

// ecdf computes the empirical CDF of x for each series. There is one
// point per observation in x order, at the cumulative fraction of
// weight up to and including it, so unweighted series step by 1/n.
// A point at y=0 comes first unless padding is disabled.
func ecdf(p Params, rows []render.Record) ([]render.Record, error) {
	pad := p.pad(true)
	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		xs, ws := floats(g.rows, "x")
		if len(xs) == 0 {
			continue
		}
		idx := make([]int, len(xs))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(i, j int) bool { return xs[idx[i]] < xs[idx[j]] })
		total := 0.0
		for _, w := range ws {
			total += w
		}

		if pad {
			r := synth(g.rows)
			r.X, r.Y = xs[idx[0]], 0.0
			r.SetMeta("ecdf", 0.0)
			r.SetMeta("n", 0.0)
			out = append(out, r)
		}
		cum := 0.0
		for _, i := range idx {
			cum += ws[i]
			r := synth(g.rows)
			r.X, r.Y = xs[i], cum/total
			r.SetMeta("ecdf", cum/total)
			r.SetMeta("n", cum)
			out = append(out, r)
		}
	}
	return out, nil
}

// NormalQuantile returns the p-quantile of the standard normal
// distribution, using Acklam's rational approximation. It returns ∓Inf
// at p=0 and p=1.
func NormalQuantile(p float64) float64 {
	switch {
	case p <= 0:
		return math.Inf(-1)
	case p >= 1:
		return math.Inf(1)
	}
	return stats.StdNormal.InvCDF(p)
}

// qqEpsilon bounds the probabilities at which QQ lines are evaluated,
// keeping the theoretical quantiles finite.
const qqEpsilon = 1e-10

// ppoints returns the n plotting positions (i-a)/(n+1-2a).
func ppoints(n int) []float64 {
	a := 0.5
	if n <= 10 {
		a = 3.0 / 8
	}
	ps := make([]float64, n)
	for i := range ps {
		ps[i] = (float64(i+1) - a) / (float64(n) + 1 - 2*a)
	}
	return ps
}

// qqSample returns the sorted sample of a series. The sample
// aesthetic is preferred, falling back to y.
func qqSample(rows []render.Record) []float64 {
	xs, _ := floats(rows, "sample")
	if len(xs) == 0 {
		xs, _ = floats(rows, "y")
	}
	return sortedCopy(xs)
}

// qq pairs theoretical normal quantiles (x) with the sorted sample (y).
func qq(p Params, rows []render.Record) ([]render.Record, error) {
	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		s := qqSample(g.rows)
		for i, pp := range ppoints(len(s)) {
			r := synth(g.rows)
			r.X, r.Y = NormalQuantile(pp), s[i]
			r.SetMeta("theoretical", r.X)
			r.SetMeta("sample", s[i])
			out = append(out, r)
		}
	}
	return out, nil
}

// qqLine fits the line through the first and third quartiles of the
// sample against those of the normal distribution, and evaluates it
// at the extreme plotting positions of each series.
func qqLine(p Params, rows []render.Record) ([]render.Record, error) {
	x1, x2 := NormalQuantile(0.25), NormalQuantile(0.75)
	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		s := qqSample(g.rows)
		if len(s) < 2 {
			continue
		}
		y1, y2 := Quantile7(s, 0.25), Quantile7(s, 0.75)
		slope := (y2 - y1) / (x2 - x1)
		intercept := y1 - slope*x1

		pp := ppoints(len(s))
		for _, pr := range []float64{pp[0], pp[len(pp)-1]} {
			pr = math.Min(math.Max(pr, qqEpsilon), 1-qqEpsilon)
			x := NormalQuantile(pr)
			r := synth(g.rows)
			r.X, r.Y = x, intercept+slope*x
			r.SetMeta("slope", slope)
			r.SetMeta("intercept", intercept)
			out = append(out, r)
		}
	}
	return out, nil
}
