// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/aclements/go-gglayer/diag"
	"github.com/aclements/go-gglayer/render"
)

// quantile fits a linear quantile regression of y on x for each
// requested quantile and samples each fit at N points across the
// series' x range. Each quantile becomes its own series.
func quantile(p Params, rows []render.Record) ([]render.Record, error) {
	qs := p.Quantiles
	if qs == nil {
		qs = []float64{0.25, 0.5, 0.75}
	}
	for _, q := range qs {
		if !(q > 0 && q < 1) {
			return nil, errorf("quantile must be in (0, 1), got %v", q)
		}
	}
	n, err := p.n(100)
	if err != nil {
		return nil, err
	}
	degree, err := modelDegree(p)
	if err != nil {
		return nil, err
	}

	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		pts := pairs(g.rows)
		if len(pts) < degree+1 {
			continue
		}
		if len(pts) > maxQuantRegPoints {
			return nil, errorf("quantile regression supports at most %d points per series, got %d", maxQuantRegPoints, len(pts))
		}
		xs, ys := make([]float64, len(pts)), make([]float64, len(pts))
		for i, pt := range pts {
			xs[i], ys[i] = pt.x, pt.y
		}
		lo, hi := stats.Bounds(xs)
		eval := vec.Linspace(lo, hi, n)
		if n == 1 {
			eval = []float64{lo}
		}
		for _, q := range qs {
			coef, ok := quantReg(xs, ys, degree, q)
			if !ok {
				diag.Logger().Warn("quantile: regression did not converge", "group", g.key, "quantile", q)
				continue
			}
			f := polyFit{coef: coef}
			for _, x := range eval {
				r := synth(g.rows)
				r.X, r.Y = x, f.eval(x)
				if render.IsNull(r.Group) {
					r.Group = q
				} else {
					r.Group = fmt.Sprintf("%v-%v", render.Key(r.Group), q)
				}
				r.SetMeta("quantile", q)
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// maxQuantRegPoints bounds the series size for quantReg, whose dense
// tableau has m×(2p+2m) entries for m points.
const maxQuantRegPoints = 2000

// quantReg minimizes the check loss ∑ ρ_q(yᵢ - f(xᵢ)) over polynomials
// f of the given degree. It solves the equivalent linear program
//
//	min  q·1ᵀu + (1-q)·1ᵀv
//	s.t. 𝐗(b⁺ - b⁻) + u - v = y,  b⁺, b⁻, u, v ≥ 0
//
// with the simplex method, starting from the basis of residual slacks.
func quantReg(xs, ys []float64, degree int, q float64) ([]float64, bool) {
	m := len(xs)
	p := degree + 1
	// Columns: b⁺ (p), b⁻ (p), u (m), v (m).
	nc := 2*p + 2*m
	cost := make([]float64, nc)
	for i := 0; i < m; i++ {
		cost[2*p+i] = q
		cost[2*p+m+i] = 1 - q
	}

	tab := make([][]float64, m)
	rhs := make([]float64, m)
	basis := make([]int, m)
	for i := range tab {
		row := make([]float64, nc)
		v := 1.0
		for j := 0; j < p; j++ {
			row[j] = v
			row[p+j] = -v
			v *= xs[i]
		}
		row[2*p+i] = 1
		row[2*p+m+i] = -1
		rhs[i] = ys[i]
		basis[i] = 2*p + i
		if ys[i] < 0 {
			// Flip so the right side is non-negative; v is
			// then the basic slack.
			for j := range row {
				row[j] = -row[j]
			}
			rhs[i] = -ys[i]
			basis[i] = 2*p + m + i
		}
		tab[i] = row
	}

	// Reduced costs of the starting basis.
	red := append([]float64(nil), cost...)
	for i, b := range basis {
		cb := cost[b]
		for j := range red {
			red[j] -= cb * tab[i][j]
		}
	}

	const eps = 1e-10
	maxIter := 50 * (m + p)
	for iter := 0; ; iter++ {
		if iter > maxIter {
			return nil, false
		}
		// Dantzig's rule, switching to Bland's rule to escape
		// cycling on degenerate problems.
		enter := -1
		best := -eps
		bland := iter > maxIter/2
		for j, r := range red {
			if r < best {
				enter, best = j, r
				if bland {
					break
				}
			}
		}
		if enter < 0 {
			break
		}
		leave := -1
		ratio := math.Inf(1)
		for i := range tab {
			a := tab[i][enter]
			if a <= eps {
				continue
			}
			r := rhs[i] / a
			if r < ratio-eps || (r <= ratio+eps && leave >= 0 && basis[i] < basis[leave]) {
				leave, ratio = i, r
			}
		}
		if leave < 0 {
			// Unbounded; cannot happen for a feasible check
			// loss, which is bounded below by 0.
			return nil, false
		}
		pivot(tab, rhs, red, leave, enter)
		basis[leave] = enter
	}

	x := make([]float64, nc)
	for i, b := range basis {
		x[b] = rhs[i]
	}
	coef := make([]float64, p)
	for j := range coef {
		coef[j] = x[j] - x[p+j]
	}
	return coef, true
}

func pivot(tab [][]float64, rhs, red []float64, r, c int) {
	pr := tab[r]
	inv := 1 / pr[c]
	for j := range pr {
		pr[j] *= inv
	}
	rhs[r] *= inv
	for i, row := range tab {
		if i == r {
			continue
		}
		f := row[c]
		if f == 0 {
			continue
		}
		for j := range row {
			row[j] -= f * pr[j]
		}
		rhs[i] -= f * rhs[r]
	}
	f := red[c]
	for j := range red {
		red[j] -= f * pr[j]
	}
}
