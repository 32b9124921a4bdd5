// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"

	"github.com/aclements/go-gglayer/render"
)

// Quantile7 returns the p-quantile of sorted using linear
// interpolation between order statistics (Hyndman and Fan type 7, the
// default of R and NumPy). sorted must be in increasing order. It
// returns NaN for an empty slice.
func Quantile7(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1)*p + 1
	j := int(math.Floor(h))
	g := h - float64(j)
	switch {
	case j < 1:
		return sorted[0]
	case j >= n:
		return sorted[n-1]
	}
	return sorted[j-1] + g*(sorted[j]-sorted[j-1])
}

// boxplot computes Tukey box statistics of y for each box. A box is an
// explicit group if one is mapped, otherwise a distinct x.
//
// The box width is taken from a mapped width aesthetic if present.
// Otherwise, for an explicit group over a continuous x, it is 90% of
// the group's x range, and failing that Params.Width.
func boxplot(p Params, rows []render.Record) ([]render.Record, error) {
	coef := orDefault(p.Coef, 1.5)
	if coef < 0 {
		return nil, errorf("boxplot coef must be non-negative, got %v", coef)
	}
	defWidth := orDefault(p.Width, 0.9)
	explicit := false
	for i := range rows {
		if !render.IsNull(rows[i].Group) {
			explicit = true
			break
		}
	}
	contX := !discreteX(rows)

	key := func(r *render.Record) string { return render.Key(r.X) + "\x01" + groupKey(r) }
	if explicit {
		key = func(r *render.Record) string { return render.Key(r.Group) }
	}

	var out []render.Record
	for _, g := range splitGroups(rows, key) {
		ys, _ := floats(g.rows, "y")
		if len(ys) == 0 {
			continue
		}
		ys = sortedCopy(ys)
		q1, q2, q3 := Quantile7(ys, 0.25), Quantile7(ys, 0.5), Quantile7(ys, 0.75)
		iqr := q3 - q1
		lf, uf := q1-coef*iqr, q3+coef*iqr

		wlo, whi := math.Inf(1), math.Inf(-1)
		outliers := []float64{}
		for _, y := range ys {
			if y < lf || y > uf {
				outliers = append(outliers, y)
				continue
			}
			wlo, whi = math.Min(wlo, y), math.Max(whi, y)
		}
		if math.IsInf(wlo, 0) {
			// Every point is an outlier; collapse the whiskers
			// onto the box.
			wlo, whi = q1, q3
		}

		r := synth(g.rows)
		width := defWidth
		xlo, xhi, haveX := bounds(g.rows, "x")
		switch {
		case widthAes(g.rows) > 0:
			width = widthAes(g.rows)
		case explicit && contX && haveX && xhi > xlo:
			width = 0.9 * (xhi - xlo)
		}
		switch {
		case explicit && contX && haveX:
			r.X = (xlo + xhi) / 2
		case g.rows[0].X != nil:
			r.X = g.rows[0].X
		default:
			r.X = 0.0
		}
		n := float64(len(ys))
		r.Y = q2
		r.YMin, r.YMax = wlo, whi
		r.Width = width
		r.SetMeta("lower", q1)
		r.SetMeta("middle", q2)
		r.SetMeta("upper", q3)
		r.SetMeta("ymin", wlo)
		r.SetMeta("ymax", whi)
		r.SetMeta("iqr", iqr)
		r.SetMeta("fence_lower", lf)
		r.SetMeta("fence_upper", uf)
		r.SetMeta("outliers", outliers)
		r.SetMeta("notchlower", q2-1.58*iqr/math.Sqrt(n))
		r.SetMeta("notchupper", q2+1.58*iqr/math.Sqrt(n))
		r.SetMeta("n", len(ys))
		r.SetMeta("relvarwidth", math.Sqrt(n))
		r.SetMeta("width", width)
		out = append(out, r)
	}
	return out, nil
}

func widthAes(rows []render.Record) float64 {
	for i := range rows {
		if w, ok := render.Float(rows[i].Width); ok && w > 0 {
			return w
		}
	}
	return 0
}
