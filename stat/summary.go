// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/aclements/go-gglayer/render"
)

// aggregates are the scalar summary functions.
var aggregates = map[string]func(xs []float64) float64{
	"mean":   func(xs []float64) float64 { return stats.Mean(xs) },
	"median": func(xs []float64) float64 { return Quantile7(sortedCopy(xs), 0.5) },
	"sum":    vec.Sum,
	"min": func(xs []float64) float64 {
		lo, _ := stats.Bounds(xs)
		return lo
	},
	"max": func(xs []float64) float64 {
		_, hi := stats.Bounds(xs)
		return hi
	},
	"count":  func(xs []float64) float64 { return float64(len(xs)) },
	"length": func(xs []float64) float64 { return float64(len(xs)) },
	"sd": func(xs []float64) float64 {
		if len(xs) < 2 {
			return math.NaN()
		}
		return stats.StdDev(xs)
	},
	"var": func(xs []float64) float64 {
		if len(xs) < 2 {
			return math.NaN()
		}
		return stats.Variance(xs)
	},
}

func aggregate(name string) (func([]float64) float64, error) {
	f, ok := aggregates[name]
	if !ok {
		return nil, errorf("unknown summary function %q", name)
	}
	return f, nil
}

// summarizer reduces a sample of y to (y, ymin, ymax). ymin and ymax
// are NaN when not computed.
type summarizer func(ys []float64) (y, lo, hi float64)

func (p Params) summarizer() (summarizer, error) {
	nan := math.NaN()
	if p.Fun != "" || p.FunMin != "" || p.FunMax != "" {
		var fy, flo, fhi func([]float64) float64
		var err error
		for _, f := range []struct {
			name string
			fn   *func([]float64) float64
		}{{p.Fun, &fy}, {p.FunMin, &flo}, {p.FunMax, &fhi}} {
			if f.name == "" {
				continue
			}
			if *f.fn, err = aggregate(f.name); err != nil {
				return nil, err
			}
		}
		return func(ys []float64) (y, lo, hi float64) {
			y, lo, hi = nan, nan, nan
			if fy != nil {
				y = fy(ys)
			}
			if flo != nil {
				lo = flo(ys)
			}
			if fhi != nil {
				hi = fhi(ys)
			}
			return
		}, nil
	}

	conf := orDefault(p.ConfInt, 0.95)
	if !(conf > 0 && conf < 1) {
		return nil, errorf("conf.int must be in (0, 1), got %v", conf)
	}
	switch p.FunData {
	case "", "mean_se":
		mult := orDefault(p.Mult, 1)
		return func(ys []float64) (y, lo, hi float64) {
			m := stats.Mean(ys)
			se := stdErr(ys)
			return m, m - mult*se, m + mult*se
		}, nil
	case "mean_cl_normal":
		return func(ys []float64) (y, lo, hi float64) {
			m := stats.Mean(ys)
			if len(ys) < 2 {
				return m, nan, nan
			}
			w := TCritical(conf, float64(len(ys)-1)) * stdErr(ys)
			return m, m - w, m + w
		}, nil
	case "median_hilow":
		return func(ys []float64) (y, lo, hi float64) {
			s := sortedCopy(ys)
			return Quantile7(s, 0.5), Quantile7(s, (1-conf)/2), Quantile7(s, 1-(1-conf)/2)
		}, nil
	case "mean_sdl":
		mult := orDefault(p.Mult, 2)
		return func(ys []float64) (y, lo, hi float64) {
			m := stats.Mean(ys)
			sd := nan
			if len(ys) > 1 {
				sd = stats.StdDev(ys)
			}
			return m, m - mult*sd, m + mult*sd
		}, nil
	}
	return nil, errorf("unknown summary function %q", p.FunData)
}

func stdErr(ys []float64) float64 {
	if len(ys) < 2 {
		return math.NaN()
	}
	return stats.StdDev(ys) / math.Sqrt(float64(len(ys)))
}

func summaryRecord(rows []render.Record, ys []float64, sum summarizer) render.Record {
	y, lo, hi := sum(ys)
	r := synth(rows)
	r.Y = nullable(y)
	r.YMin, r.YMax = nullable(lo), nullable(hi)
	r.SetMeta("n", len(ys))
	return r
}

// summary reduces y within each distinct x of each series. Without an
// x mapping, each series is reduced to one record.
func summary(p Params, rows []render.Record) ([]render.Record, error) {
	sum, err := p.summarizer()
	if err != nil {
		return nil, err
	}
	key := func(r *render.Record) string { return render.Key(r.X) + "\x01" + groupKey(r) }
	var out []render.Record
	for _, g := range splitGroups(rows, key) {
		ys, _ := floats(g.rows, "y")
		if len(ys) == 0 {
			continue
		}
		r := summaryRecord(g.rows, ys, sum)
		r.X = g.rows[0].X
		out = append(out, r)
	}
	return out, nil
}

// summaryBin reduces y within x bins of each series.
func summaryBin(p Params, rows []render.Record) ([]render.Record, error) {
	sum, err := p.summarizer()
	if err != nil {
		return nil, err
	}
	lo, hi, ok := bounds(rows, "x")
	if !ok {
		return nil, nil
	}
	br := newBreaks(lo, hi, p.Bins, p.Binwidth, p.Boundary, p.Center)
	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		cells := make([][]float64, br.n)
		for _, pt := range pairs(g.rows) {
			i := br.index(pt.x)
			cells[i] = append(cells[i], pt.y)
		}
		for i, ys := range cells {
			if len(ys) == 0 {
				continue
			}
			r := summaryRecord(g.rows, ys, sum)
			r.X = br.mid(i)
			r.XMin, r.XMax = br.lo(i), br.hi(i)
			r.Width = br.hi(i) - br.lo(i)
			out = append(out, r)
		}
	}
	return out, nil
}
