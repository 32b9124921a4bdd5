// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/render"
)

// Facet splits a chart into panels by the values of table columns.
// The zero Facet is a single panel.
type Facet struct {
	// Wrap lists the columns of a wrapped facet: one panel per
	// combination of values present in the data, laid out in NCol
	// columns (default ⌈√panels⌉).
	Wrap []string
	NCol int

	// Rows and Cols are the columns of a grid facet. Every
	// combination of row and column values gets a panel.
	Rows, Cols []string
}

func (f Facet) clone() Facet {
	f.Wrap = append([]string(nil), f.Wrap...)
	f.Rows = append([]string(nil), f.Rows...)
	f.Cols = append([]string(nil), f.Cols...)
	return f
}

func (f Facet) vars() []string {
	vs := append([]string(nil), f.Wrap...)
	vs = append(vs, f.Rows...)
	return append(vs, f.Cols...)
}

func (f Facet) validate(t *table.Table) error {
	if len(f.Wrap) > 0 && len(f.Rows)+len(f.Cols) > 0 {
		return ggerr.Validationf("facet", "a facet cannot both wrap and form a grid")
	}
	if f.NCol < 0 {
		return ggerr.Validationf("facet", "ncol must be positive, got %d", f.NCol)
	}
	for _, v := range f.vars() {
		if t.Column(v) == nil {
			return ggerr.Validation("facet", aes.ColumnError("facet", v, t.Columns()))
		}
	}
	return nil
}

// Panel is one facet panel.
type Panel struct {
	Index    int
	Row, Col int

	// Values holds the facet column values that select the panel.
	Values map[string]any
}

func (p Panel) clone() Panel {
	p.Values = copyMap(p.Values)
	return p
}

// panelSet assigns rows to panels.
type panelSet struct {
	facet  Facet
	panels []Panel
	index  map[string]int
}

func panelKey(vals []any) string {
	ks := make([]string, len(vals))
	for i, v := range vals {
		ks[i] = render.Key(v)
	}
	return strings.Join(ks, "\x00")
}

// levels returns the sorted distinct values of column v of t.
func levels(t *table.Table, v string) []any {
	col := t.Column(v)
	seen := make(map[string]bool)
	var out []any
	for i := 0; i < t.Len(); i++ {
		x := render.ColumnValue(col, i)
		if k := render.Key(x); !seen[k] {
			seen[k] = true
			out = append(out, x)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return render.Less(out[i], out[j]) })
	return out
}

func newPanelSet(f Facet, t *table.Table) *panelSet {
	ps := &panelSet{facet: f, index: make(map[string]int)}
	add := func(names []string, vals []any, row, col int) {
		p := Panel{Index: len(ps.panels), Row: row, Col: col, Values: make(map[string]any)}
		for i, n := range names {
			p.Values[n] = vals[i]
		}
		ps.index[panelKey(vals)] = p.Index
		ps.panels = append(ps.panels, p)
	}

	switch {
	case len(f.Wrap) > 0:
		// Panels for the combinations present, in sorted order.
		var combos [][]any
		seen := make(map[string]bool)
		for i := 0; i < t.Len(); i++ {
			vals := rowValues(t, f.Wrap, i)
			if k := panelKey(vals); !seen[k] {
				seen[k] = true
				combos = append(combos, vals)
			}
		}
		sort.SliceStable(combos, func(i, j int) bool {
			a, b := combos[i], combos[j]
			for k := range a {
				if render.Less(a[k], b[k]) {
					return true
				}
				if render.Less(b[k], a[k]) {
					return false
				}
			}
			return false
		})
		ncol := f.NCol
		if ncol == 0 {
			ncol = int(math.Ceil(math.Sqrt(float64(len(combos)))))
		}
		for i, vals := range combos {
			add(f.Wrap, vals, i/ncol, i%ncol)
		}

	case len(f.Rows)+len(f.Cols) > 0:
		rows := product(t, f.Rows)
		cols := product(t, f.Cols)
		names := append(append([]string(nil), f.Rows...), f.Cols...)
		for r, rv := range rows {
			for c, cv := range cols {
				add(names, append(append([]any(nil), rv...), cv...), r, c)
			}
		}

	default:
		add(nil, nil, 0, 0)
	}
	return ps
}

// product returns every combination of the levels of vars. With no
// vars it is a single empty combination.
func product(t *table.Table, vars []string) [][]any {
	out := [][]any{nil}
	for _, v := range vars {
		var next [][]any
		for _, prefix := range out {
			for _, l := range levels(t, v) {
				next = append(next, append(append([]any(nil), prefix...), l))
			}
		}
		out = next
	}
	return out
}

func rowValues(t *table.Table, vars []string, row int) []any {
	vals := make([]any, len(vars))
	for i, v := range vars {
		vals[i] = render.ColumnValue(t.Column(v), row)
	}
	return vals
}

// assign returns the panel of each row of t. ok is false if t lacks
// any facet column, in which case the layer belongs in every panel.
func (ps *panelSet) assign(t *table.Table) (panels []int, ok bool) {
	vars := ps.facet.vars()
	if len(vars) == 0 {
		return make([]int, t.Len()), true
	}
	for _, v := range vars {
		if t.Column(v) == nil {
			return nil, false
		}
	}
	panels = make([]int, t.Len())
	for i := range panels {
		p, found := ps.index[panelKey(rowValues(t, vars, i))]
		if !found {
			p = -1
		}
		panels[i] = p
	}
	return panels, true
}
