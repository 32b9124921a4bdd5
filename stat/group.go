// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/render"
)

func errorf(format string, args ...interface{}) error {
	return ggerr.Validationf("stat", format, args...)
}

// A group is a run of records that a stat treats as one series.
type group struct {
	key  string
	rows []render.Record
}

// groupKey returns the series key of r: its explicit group if mapped,
// otherwise the interaction of its discrete style aesthetics.
func groupKey(r *render.Record) string {
	if !render.IsNull(r.Group) {
		return render.Key(r.Group)
	}
	var parts []string
	for _, v := range [...]any{r.Color, r.Fill, r.Shape, r.Linetype} {
		if v == nil || render.IsNumeric(v) {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, render.Key(v))
	}
	return strings.Join(parts, "\x00")
}

// splitGroups partitions rows by key, in order of first appearance.
func splitGroups(rows []render.Record, key func(*render.Record) string) []group {
	var gs []group
	idx := make(map[string]int)
	for i := range rows {
		k := key(&rows[i])
		j, ok := idx[k]
		if !ok {
			j = len(gs)
			idx[k] = j
			gs = append(gs, group{key: k})
		}
		gs[j].rows = append(gs[j].rows, rows[i])
	}
	return gs
}

// preserveConsts copies into out the non-positional aesthetics that
// are constant across rows. Stats use it so a series keeps its color,
// fill, and group through the transform.
func preserveConsts(out *render.Record, rows []render.Record) {
	if len(rows) == 0 {
		return
	}
	for _, f := range [...]string{"color", "fill", "size", "alpha", "shape", "linetype", "linewidth", "group"} {
		v := rows[0].Get(f)
		if v == nil {
			continue
		}
		k := render.Key(v)
		same := true
		for i := 1; i < len(rows) && same; i++ {
			same = render.Key(rows[i].Get(f)) == k
		}
		if same {
			out.Set(f, v)
		}
	}
	out.Panel = rows[0].Panel
}

// synth returns a new stat-generated record carrying rows' constant
// aesthetics.
func synth(rows []render.Record) render.Record {
	r := render.Record{Row: -1}
	preserveConsts(&r, rows)
	return r
}

// xy is a numeric observation with a weight.
type xy struct {
	x, y, w float64
}

// floats extracts the numeric values of field from rows, skipping
// nulls and non-numeric values, with their weights.
func floats(rows []render.Record, field string) (xs, ws []float64) {
	for i := range rows {
		x, ok := render.Float(rows[i].Get(field))
		if !ok {
			continue
		}
		xs = append(xs, x)
		ws = append(ws, weight(&rows[i]))
	}
	return
}

// pairs extracts the rows where both x and y are numeric.
func pairs(rows []render.Record) []xy {
	var out []xy
	for i := range rows {
		x, ok1 := render.Float(rows[i].X)
		y, ok2 := render.Float(rows[i].Y)
		if ok1 && ok2 {
			out = append(out, xy{x, y, weight(&rows[i])})
		}
	}
	return out
}

func weight(r *render.Record) float64 {
	if w, ok := render.Float(r.Weight); ok {
		return w
	}
	return 1
}

func unweighted(ws []float64) bool {
	for _, w := range ws {
		if w != 1 {
			return false
		}
	}
	return true
}

// bounds returns the range of the numeric values of field across all
// rows.
func bounds(rows []render.Record, field string) (lo, hi float64, ok bool) {
	xs, _ := floats(rows, field)
	if len(xs) == 0 {
		return 0, 0, false
	}
	lo, hi = stats.Bounds(xs)
	return lo, hi, true
}

// discreteX reports whether any row has a non-numeric x.
func discreteX(rows []render.Record) bool {
	for i := range rows {
		if rows[i].X != nil && !render.IsNumeric(rows[i].X) {
			return true
		}
	}
	return false
}

func sortedCopy(xs []float64) []float64 {
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	return s
}

func nullable(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
