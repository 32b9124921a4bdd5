// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"sort"
	"strings"

	"github.com/aclements/go-moremath/vec"

	"github.com/aclements/go-gglayer/render"
)

// function samples p.Fn at N points over p.XLim, the data's x range,
// or [0, 1].
func function(p Params, rows []render.Record) ([]render.Record, error) {
	if p.Fn == nil {
		return nil, errorf("function stat needs a function")
	}
	n, err := p.n(101)
	if err != nil {
		return nil, err
	}
	lo, hi := 0.0, 1.0
	switch {
	case p.XLim != nil:
		if len(p.XLim) != 2 {
			return nil, errorf("xlim must have two values, got %d", len(p.XLim))
		}
		lo, hi = p.XLim[0], p.XLim[1]
	default:
		if dlo, dhi, ok := bounds(rows, "x"); ok {
			lo, hi = dlo, dhi
		}
	}
	xs := []float64{lo}
	if n > 1 {
		xs = vec.Linspace(lo, hi, n)
	}
	out := make([]render.Record, len(xs))
	for i, x := range xs {
		out[i] = render.Record{Row: -1, X: x, Y: nullable(p.Fn(x))}
		if len(rows) > 0 {
			out[i].Panel = rows[0].Panel
		}
	}
	return out, nil
}

// align resamples every series at the union of all series' x values,
// so that series can be stacked point by point. Inside a series' range
// y is interpolated linearly; outside it, the nearest end value is
// used.
func align(p Params, rows []render.Record) ([]render.Record, error) {
	set := make(map[float64]bool)
	for _, pt := range pairs(rows) {
		set[pt.x] = true
	}
	grid := make([]float64, 0, len(set))
	for x := range set {
		grid = append(grid, x)
	}
	sort.Float64s(grid)

	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		type src struct {
			x, y float64
			row  int
		}
		var pts []src
		for i := range g.rows {
			x, ok1 := render.Float(g.rows[i].X)
			y, ok2 := render.Float(g.rows[i].Y)
			if ok1 && ok2 {
				pts = append(pts, src{x, y, g.rows[i].Row})
			}
		}
		if len(pts) == 0 {
			continue
		}
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })
		for _, x := range grid {
			r := synth(g.rows)
			r.X = x
			j := sort.Search(len(pts), func(i int) bool { return pts[i].x >= x })
			switch {
			case j < len(pts) && pts[j].x == x:
				r.Y, r.Row = pts[j].y, pts[j].row
			case j == 0:
				r.Y = pts[0].y
				r.SetMeta("align_padding", true)
			case j == len(pts):
				r.Y = pts[len(pts)-1].y
				r.SetMeta("align_padding", true)
			default:
				a, b := pts[j-1], pts[j]
				r.Y = a.y + (b.y-a.y)*(x-a.x)/(b.x-a.x)
			}
			out = append(out, r)
		}
	}
	return out, nil
}

// unique drops rows that duplicate an earlier row. Rows are compared
// on p.Columns of the source table if given, otherwise on all of their
// aesthetic values.
func unique(p Params, in Input) ([]render.Record, error) {
	key := func(r *render.Record) string {
		parts := make([]string, len(render.Fields))
		for i, f := range render.Fields {
			parts[i] = render.Key(r.Get(f))
		}
		return strings.Join(parts, "\x00")
	}
	if p.Columns != nil {
		if in.Table == nil {
			return nil, errorf("unique columns need a table")
		}
		for _, c := range p.Columns {
			if in.Table.Column(c) == nil {
				return nil, errorf("unique: unknown column %q", c)
			}
		}
		key = func(r *render.Record) string {
			if r.Row < 0 {
				return "synth\x00" + render.Key(r.X) + "\x00" + render.Key(r.Y)
			}
			parts := make([]string, len(p.Columns))
			for i, c := range p.Columns {
				parts[i] = render.Key(render.ColumnValue(in.Table.Column(c), r.Row))
			}
			return strings.Join(parts, "\x00")
		}
	}
	seen := make(map[string]bool)
	var out []render.Record
	for i := range in.Records {
		k := key(&in.Records[i])
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, in.Records[i])
	}
	return out, nil
}
