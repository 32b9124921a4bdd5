// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"

	"github.com/aclements/go-gglayer/render"
)

// breaks is a regular set of bins [start+i*width, start+(i+1)*width).
// The last bin is closed on the right.
type breaks struct {
	start, width float64
	n            int
}

// newBreaks lays out bins over [lo, hi]. binwidth, if positive,
// fixes the width and the bins are aligned to boundary or center;
// otherwise the range is divided into bins bins.
func newBreaks(lo, hi float64, bins int, binwidth float64, boundary, center *float64) breaks {
	if bins <= 0 {
		bins = 30
	}
	if lo == hi {
		w := binwidth
		if w <= 0 {
			w = 1
		}
		return breaks{lo - w/2, w, 1}
	}
	if binwidth <= 0 {
		return breaks{lo, (hi - lo) / float64(bins), bins}
	}
	var start float64
	switch {
	case boundary != nil:
		start = *boundary + math.Floor((lo-*boundary)/binwidth)*binwidth
	case center != nil:
		b := *center - binwidth/2
		start = b + math.Floor((lo-b)/binwidth)*binwidth
	default:
		start = lo
	}
	n := int(math.Ceil((hi - start) / binwidth))
	if n < 1 {
		n = 1
	}
	for start+float64(n)*binwidth < hi {
		n++
	}
	return breaks{start, binwidth, n}
}

// index returns the bin containing x, clamped to the valid bins.
func (b breaks) index(x float64) int {
	i := int(math.Floor((x - b.start) / b.width))
	if i < 0 {
		return 0
	}
	if i >= b.n {
		return b.n - 1
	}
	return i
}

func (b breaks) lo(i int) float64 { return b.start + float64(i)*b.width }

func (b breaks) hi(i int) float64 {
	if i == b.n-1 && b.n > 1 {
		// Avoid accumulated rounding in the final edge.
		return b.start + float64(b.n)*b.width
	}
	return b.lo(i + 1)
}

func (b breaks) mid(i int) float64 { return (b.lo(i) + b.hi(i)) / 2 }

// bin computes a histogram of x. The breaks are shared by all series
// so stacked histograms line up. Every non-null x falls in exactly one
// bin.
func bin(p Params, rows []render.Record) ([]render.Record, error) {
	lo, hi, ok := bounds(rows, "x")
	if !ok {
		return nil, nil
	}
	if p.Binwidth < 0 || p.Bins < 0 {
		return nil, errorf("bins and binwidth must be positive")
	}
	br := newBreaks(lo, hi, p.Bins, p.Binwidth, p.Boundary, p.Center)
	pad := p.pad(false)

	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		xs, ws := floats(g.rows, "x")
		if len(xs) == 0 {
			continue
		}
		counts := make([]float64, br.n)
		total := 0.0
		for i, x := range xs {
			counts[br.index(x)] += ws[i]
			total += ws[i]
		}

		first, last := 0, br.n-1
		if pad {
			first, last = -1, br.n
		}
		maxCount, maxDensity := 0.0, 0.0
		var recs []render.Record
		for i := first; i <= last; i++ {
			c := 0.0
			if i >= 0 && i < br.n {
				c = counts[i]
			}
			xmin, xmax := br.start+float64(i)*br.width, br.start+float64(i+1)*br.width
			if i >= 0 && i < br.n {
				xmin, xmax = br.lo(i), br.hi(i)
			}
			w := xmax - xmin
			d := c / (total * w)
			maxCount = math.Max(maxCount, c)
			maxDensity = math.Max(maxDensity, d)

			r := synth(g.rows)
			r.X, r.Y = (xmin+xmax)/2, c
			r.XMin, r.XMax = xmin, xmax
			r.Width = w
			r.SetMeta("count", c)
			r.SetMeta("density", d)
			r.SetMeta("width", w)
			recs = append(recs, r)
		}
		for i := range recs {
			c, _ := recs[i].MetaFloat("count")
			d, _ := recs[i].MetaFloat("density")
			recs[i].SetMeta("ncount", ratio(c, maxCount))
			recs[i].SetMeta("ndensity", ratio(d, maxDensity))
		}
		out = append(out, recs...)
	}
	return out, nil
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
