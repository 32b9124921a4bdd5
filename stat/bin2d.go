// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"

	"github.com/aclements/go-gglayer/render"
)

// cell accumulates the observations in one 2-D bin.
type cell struct {
	x, y   float64
	w      float64
	zs     []float64
	bounds [4]float64 // xmin, xmax, ymin, ymax
}

type cellSet struct {
	cells []*cell
	index map[[2]int]*cell
}

func (s *cellSet) get(k [2]int, init func() *cell) *cell {
	if s.index == nil {
		s.index = make(map[[2]int]*cell)
	}
	c, ok := s.index[k]
	if !ok {
		c = init()
		s.index[k] = c
		s.cells = append(s.cells, c)
	}
	return c
}

// zOf returns the numeric z of r, if summarizing.
func zOf(r *render.Record) (float64, bool) {
	return render.Float(r.Z)
}

func needZ(rows []render.Record) error {
	for i := range rows {
		if _, ok := zOf(&rows[i]); ok {
			return nil
		}
	}
	return errorf("summary needs a numeric z aesthetic")
}

func (p Params) zFun() (func([]float64) float64, error) {
	name := p.Fun
	if name == "" {
		name = "mean"
	}
	return aggregate(name)
}

// emitCells converts accumulated cells into records. For counting stats,
// fill defaults to the count; for summaries, to the summary of z.
func emitCells(p Params, rows []render.Record, cs *cellSet, summarize bool, hex bool, out []render.Record) ([]render.Record, error) {
	var zf func([]float64) float64
	if summarize {
		var err error
		if zf, err = p.zFun(); err != nil {
			return nil, err
		}
	}
	total := 0.0
	for _, c := range cs.cells {
		total += c.w
	}
	for _, c := range cs.cells {
		r := synth(rows)
		r.X, r.Y = c.x, c.y
		if !hex {
			r.XMin, r.XMax, r.YMin, r.YMax = c.bounds[0], c.bounds[1], c.bounds[2], c.bounds[3]
		}
		r.Width = c.bounds[1] - c.bounds[0]
		r.SetMeta("width", c.bounds[1]-c.bounds[0])
		r.SetMeta("height", c.bounds[3]-c.bounds[2])
		if summarize {
			v := zf(c.zs)
			r.SetMeta("value", v)
			if r.Fill == nil {
				r.Fill = nullable(v)
			}
		} else {
			r.SetMeta("count", c.w)
			r.SetMeta("density", c.w/total)
			if r.Fill == nil {
				r.Fill = c.w
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// axisBreaks lays out the bins for one axis of a 2-D binning.
func axisBreaks(lo, hi float64, bins, dflt int, width float64) breaks {
	if bins == 0 {
		bins = dflt
	}
	return newBreaks(lo, hi, bins, width, nil, nil)
}

// bin2D counts (or, with summarize, summarizes z over) points in a
// rectangular grid. Only non-empty cells are returned.
func bin2D(p Params, rows []render.Record, summarize bool) ([]render.Record, error) {
	if p.Bins < 0 || p.BinsY < 0 || p.Binwidth < 0 || p.BinwidthY < 0 {
		return nil, errorf("bins and binwidth must be positive")
	}
	if summarize {
		if err := needZ(rows); err != nil {
			return nil, err
		}
	}
	xlo, xhi, okx := bounds(rows, "x")
	ylo, yhi, oky := bounds(rows, "y")
	if !okx || !oky {
		return nil, nil
	}
	bx := axisBreaks(xlo, xhi, p.Bins, 30, p.Binwidth)
	bywidth := p.BinwidthY
	if bywidth == 0 {
		bywidth = p.Binwidth
	}
	dflt := p.Bins
	if dflt == 0 {
		dflt = 30
	}
	by := axisBreaks(ylo, yhi, p.BinsY, dflt, bywidth)

	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		var cs cellSet
		for i := range g.rows {
			r := &g.rows[i]
			x, ok1 := render.Float(r.X)
			y, ok2 := render.Float(r.Y)
			if !ok1 || !ok2 {
				continue
			}
			z, okz := zOf(r)
			if summarize && !okz {
				continue
			}
			ix, iy := bx.index(x), by.index(y)
			c := cs.get([2]int{ix, iy}, func() *cell {
				return &cell{
					x: bx.mid(ix), y: by.mid(iy),
					bounds: [4]float64{bx.lo(ix), bx.hi(ix), by.lo(iy), by.hi(iy)},
				}
			})
			c.w += weight(r)
			if summarize {
				c.zs = append(c.zs, z)
			}
		}
		var err error
		if out, err = emitCells(p, g.rows, &cs, summarize, false, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// binHex counts (or summarizes z over) points in a hexagonal grid.
// Hexagon centers lie on rows dy = dx·√3/2 apart, with odd rows shifted
// right by dx/2, and each point belongs to the nearest center.
func binHex(p Params, rows []render.Record, summarize bool) ([]render.Record, error) {
	if p.Bins < 0 || p.Binwidth < 0 || p.BinwidthY < 0 {
		return nil, errorf("bins and binwidth must be positive")
	}
	if summarize {
		if err := needZ(rows); err != nil {
			return nil, err
		}
	}
	xlo, xhi, okx := bounds(rows, "x")
	ylo, _, oky := bounds(rows, "y")
	if !okx || !oky {
		return nil, nil
	}
	bins := p.Bins
	if bins == 0 {
		bins = 30
	}
	dx := p.Binwidth
	if dx == 0 {
		dx = (xhi - xlo) / float64(bins)
	}
	if dx == 0 {
		dx = 1
	}
	dy := p.BinwidthY
	if dy == 0 {
		dy = dx * math.Sqrt(3) / 2
	}

	center := func(col, row int) (float64, float64) {
		off := 0.0
		if row&1 != 0 {
			off = dx / 2
		}
		return xlo + float64(col)*dx + off, ylo + float64(row)*dy
	}
	nearest := func(x, y float64) (int, int) {
		best, bc, br := math.Inf(1), 0, 0
		r0 := int(math.Floor((y - ylo) / dy))
		for row := r0; row <= r0+1; row++ {
			off := 0.0
			if row&1 != 0 {
				off = dx / 2
			}
			col := int(math.Round((x - xlo - off) / dx))
			cx, cy := center(col, row)
			if d := math.Hypot(x-cx, y-cy); d < best {
				best, bc, br = d, col, row
			}
		}
		return bc, br
	}

	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		var cs cellSet
		for i := range g.rows {
			r := &g.rows[i]
			x, ok1 := render.Float(r.X)
			y, ok2 := render.Float(r.Y)
			if !ok1 || !ok2 {
				continue
			}
			z, okz := zOf(r)
			if summarize && !okz {
				continue
			}
			col, row := nearest(x, y)
			c := cs.get([2]int{col, row}, func() *cell {
				cx, cy := center(col, row)
				return &cell{x: cx, y: cy, bounds: [4]float64{cx - dx/2, cx + dx/2, cy - dy/2, cy + dy/2}}
			})
			c.w += weight(r)
			if summarize {
				c.zs = append(c.zs, z)
			}
		}
		var err error
		if out, err = emitCells(p, g.rows, &cs, summarize, true, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
