// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/aclements/go-gglayer/diag"
	"github.com/aclements/go-gglayer/render"
)

var (
	polyRe  = regexp.MustCompile(`^poly\(\s*x\s*,\s*([0-9]+)\s*(,\s*raw\s*=\s*(TRUE|true|T)\s*)?\)$`)
	powerRe = regexp.MustCompile(`^I\(\s*x\s*\^\s*([0-9]+)\s*\)$`)
)

// ParseFormula returns the polynomial degree of a model formula in x.
// It accepts "y ~ 1", "y ~ x", "y ~ poly(x, k)", and sums of x and
// I(x^k) terms such as "y ~ x + I(x^2)".
func ParseFormula(formula string) (int, error) {
	lhs, rhs, ok := strings.Cut(formula, "~")
	if !ok || strings.TrimSpace(lhs) != "y" {
		return 0, errorf("formula %q must have the form y ~ terms", formula)
	}
	rhs = strings.TrimSpace(rhs)
	if rhs == "1" {
		return 0, nil
	}
	if m := polyRe.FindStringSubmatch(rhs); m != nil {
		d, _ := strconv.Atoi(m[1])
		if d < 1 {
			return 0, errorf("formula %q: polynomial degree must be at least 1", formula)
		}
		return d, nil
	}
	degree := 0
	for _, term := range strings.Split(rhs, "+") {
		term = strings.TrimSpace(term)
		switch {
		case term == "1":
		case term == "x":
			degree = max(degree, 1)
		case powerRe.MatchString(term):
			d, _ := strconv.Atoi(powerRe.FindStringSubmatch(term)[1])
			degree = max(degree, d)
		default:
			return 0, errorf("formula %q: unsupported term %q", formula, term)
		}
	}
	return degree, nil
}

// modelDegree reconciles Params.Formula and Params.Degree.
func modelDegree(p Params) (int, error) {
	if p.Formula == "" {
		if p.Degree < 0 {
			return 0, errorf("degree must be non-negative, got %d", p.Degree)
		}
		if p.Degree == 0 {
			return 1, nil
		}
		return p.Degree, nil
	}
	d, err := ParseFormula(p.Formula)
	if err != nil {
		return 0, err
	}
	if p.Degree != 0 && p.Degree != d {
		return 0, errorf("formula %q has degree %d but degree %d was given", p.Formula, d, p.Degree)
	}
	return d, nil
}

// TCritical returns the two-sided critical value of Student's t
// distribution with df degrees of freedom at confidence level, that
// is, t such that P(|T| ≤ t) = level.
func TCritical(level, df float64) float64 {
	if !(level > 0 && level < 1) || !(df > 0) {
		return math.NaN()
	}
	return stats.InvCDF(stats.TDist{V: df})(1 - (1-level)/2)
}

// smooth fits a regression of y on x for each series and samples it at
// N points across the series' x range. For the "lm" method it also
// computes a confidence band into ymin and ymax.
func smooth(p Params, rows []render.Record) ([]render.Record, error) {
	n, err := p.n(80)
	if err != nil {
		return nil, err
	}
	level, err := p.level()
	if err != nil {
		return nil, err
	}
	degree, err := modelDegree(p)
	if err != nil {
		return nil, err
	}
	method := p.Method
	switch method {
	case "", "lm", "glm":
		method = "lm"
	case "loess":
	default:
		return nil, errorf("unknown smoothing method %q", p.Method)
	}
	span := orDefault(p.Span, 0.75)
	if !(span > 0 && span <= 1) && method == "loess" {
		return nil, errorf("loess span must be in (0, 1], got %v", span)
	}
	se := p.SE == nil || *p.SE

	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		pts := pairs(g.rows)
		if len(pts) < 2 {
			continue
		}
		xs, ys, ws := make([]float64, len(pts)), make([]float64, len(pts)), make([]float64, len(pts))
		for i, pt := range pts {
			xs[i], ys[i], ws[i] = pt.x, pt.y, pt.w
		}
		lo, hi := stats.Bounds(xs)
		eval := vec.Linspace(lo, hi, n)
		if n == 1 {
			eval = []float64{lo}
		}

		if method == "loess" {
			f := fit.LOESS(xs, ys, 2, span)
			for _, x := range eval {
				r := synth(g.rows)
				r.X, r.Y = x, nullable(f(x))
				out = append(out, r)
			}
			continue
		}

		var weights []float64
		if !unweighted(ws) {
			weights = ws
		}
		pf, err := fitPoly(xs, ys, weights, degree)
		if err != nil {
			diag.Logger().Warn("smooth: cannot fit group", "group", g.key, "points", len(pts), "degree", degree, "err", err)
			continue
		}
		band := se && pf.df > 0
		var sigma, tcrit, xbar, sxx float64
		if band {
			sigma = math.Sqrt(pf.rss / float64(pf.df))
			tcrit = TCritical(level, float64(pf.df))
			if degree == 1 && weights == nil {
				xbar = stats.Sample{Xs: xs}.Mean()
				for _, x := range xs {
					sxx += (x - xbar) * (x - xbar)
				}
			}
		}
		for _, x := range eval {
			r := synth(g.rows)
			y := pf.eval(x)
			r.X, r.Y = x, y
			if band {
				var s float64
				if degree == 1 && weights == nil {
					s = sigma * math.Sqrt(1/float64(len(xs))+(x-xbar)*(x-xbar)/sxx)
				} else {
					s = sigma * math.Sqrt(math.Max(pf.leverage(x), 0))
				}
				r.YMin, r.YMax = y-tcrit*s, y+tcrit*s
				r.SetMeta("se", s)
			}
			out = append(out, r)
		}
	}
	return out, nil
}
