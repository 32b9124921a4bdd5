// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"

	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/go-gglayer/diag"
	"github.com/aclements/go-gglayer/render"
)

// fDist is Fisher's F distribution with D1 and D2 degrees of freedom.
type fDist struct {
	D1, D2 float64
}

func (f fDist) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return mathx.BetaInc(f.D1*x/(f.D1*x+f.D2), f.D1/2, f.D2/2)
}

func (f fDist) Bounds() (float64, float64) {
	return 0, 100
}

// cov2 is a 2-D center and covariance matrix.
type cov2 struct {
	cx, cy        float64
	sxx, sxy, syy float64
}

func sampleCov(pts []xy) cov2 {
	var c cov2
	n := float64(len(pts))
	for _, p := range pts {
		c.cx += p.x / n
		c.cy += p.y / n
	}
	for _, p := range pts {
		dx, dy := p.x-c.cx, p.y-c.cy
		c.sxx += dx * dx
		c.sxy += dx * dy
		c.syy += dy * dy
	}
	c.sxx /= n - 1
	c.sxy /= n - 1
	c.syy /= n - 1
	return c
}

// robustCov estimates a multivariate t (ν=5) location and scatter by
// iterative reweighting.
func robustCov(pts []xy) cov2 {
	const nu, dim = 5.0, 2.0
	c := sampleCov(pts)
	n := float64(len(pts))
	ws := make([]float64, len(pts))
	for iter := 0; iter < 25; iter++ {
		det := c.sxx*c.syy - c.sxy*c.sxy
		if det <= 0 {
			break
		}
		// Mahalanobis weights.
		wsum := 0.0
		for i, p := range pts {
			dx, dy := p.x-c.cx, p.y-c.cy
			d2 := (c.syy*dx*dx - 2*c.sxy*dx*dy + c.sxx*dy*dy) / det
			ws[i] = (nu + dim) / (nu + d2)
			wsum += ws[i]
		}
		var next cov2
		for i, p := range pts {
			next.cx += ws[i] * p.x / wsum
			next.cy += ws[i] * p.y / wsum
		}
		for i, p := range pts {
			dx, dy := p.x-next.cx, p.y-next.cy
			next.sxx += ws[i] * dx * dx / n
			next.sxy += ws[i] * dx * dy / n
			next.syy += ws[i] * dy * dy / n
		}
		done := math.Abs(next.cx-c.cx)+math.Abs(next.cy-c.cy) < 1e-6*(math.Sqrt(c.sxx)+math.Sqrt(c.syy))
		c = next
		if done {
			break
		}
	}
	return c
}

// ellipse computes a confidence ellipse for each series with at least
// three points.
//
// Type "t" uses a robust multivariate t scatter estimate and "norm" the
// sample covariance, both with an F-distribution radius. "raw" uses the
// sample covariance with the large-sample χ² radius. "euclid" draws a
// circle of radius Level around the center.
func ellipse(p Params, rows []render.Record) ([]render.Record, error) {
	typ := p.Type
	switch typ {
	case "":
		typ = "t"
	case "t", "norm", "raw", "euclid":
	case "normal":
		typ = "norm"
	default:
		return nil, errorf("unknown ellipse type %q", p.Type)
	}
	var level float64
	if typ == "euclid" {
		level = orDefault(p.Level, 0.95)
		if level <= 0 {
			return nil, errorf("euclid ellipse radius must be positive, got %v", level)
		}
	} else {
		var err error
		if level, err = p.level(); err != nil {
			return nil, err
		}
	}
	segs := p.Segments
	if segs == 0 {
		segs = 51
	}
	if segs < 3 {
		return nil, errorf("ellipse needs at least 3 segments, got %d", segs)
	}

	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		pts := pairs(g.rows)
		if len(pts) < 3 {
			diag.Logger().Warn("ellipse: too few points", "group", g.key, "points", len(pts))
			continue
		}
		var c cov2
		var radius float64
		n := float64(len(pts))
		switch typ {
		case "t":
			c = robustCov(pts)
			radius = math.Sqrt(2 * stats.InvCDF(fDist{2, n - 1})(level))
		case "norm":
			c = sampleCov(pts)
			radius = math.Sqrt(2 * stats.InvCDF(fDist{2, n - 1})(level))
		case "raw":
			c = sampleCov(pts)
			radius = math.Sqrt(-2 * math.Log(1-level))
		case "euclid":
			c = sampleCov(pts)
			s := math.Min(c.sxx, c.syy)
			c.sxx, c.sxy, c.syy = s, 0, s
			radius = level / math.Sqrt(s)
		}

		// Upper Cholesky factor R with RᵀR = Σ.
		a := math.Sqrt(c.sxx)
		b := c.sxy / a
		cc := c.syy - b*b
		if !(a > 0) || !(cc > 0) {
			diag.Logger().Warn("ellipse: singular covariance", "group", g.key)
			continue
		}
		cc = math.Sqrt(cc)
		for i := 0; i <= segs; i++ {
			th := 2 * math.Pi * float64(i) / float64(segs)
			u, v := math.Cos(th), math.Sin(th)
			r := synth(g.rows)
			r.X = c.cx + radius*u*a
			r.Y = c.cy + radius*(u*b+v*cc)
			out = append(out, r)
		}
	}
	return out, nil
}
