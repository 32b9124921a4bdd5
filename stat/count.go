// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"github.com/aclements/go-gglayer/render"
)

// count tallies rows by distinct x within each series. The y of each
// output record is the (weighted) number of rows, and Meta carries
// "count", "percent" (of all counted rows), and "prop" (of the
// series).
func count(p Params, rows []render.Record) ([]render.Record, error) {
	var kept []render.Record
	for i := range rows {
		if !render.IsNull(rows[i].X) {
			kept = append(kept, rows[i])
		}
	}
	total := 0.0
	for i := range kept {
		total += weight(&kept[i])
	}
	series := make(map[string]float64)
	for i := range kept {
		series[groupKey(&kept[i])] += weight(&kept[i])
	}

	cells := splitGroups(kept, func(r *render.Record) string {
		return render.Key(r.X) + "\x01" + groupKey(r)
	})
	out := make([]render.Record, 0, len(cells))
	for _, c := range cells {
		n := 0.0
		for i := range c.rows {
			n += weight(&c.rows[i])
		}
		r := synth(c.rows)
		r.X = c.rows[0].X
		r.Y = n
		r.SetMeta("count", n)
		r.SetMeta("percent", n*100/total)
		r.SetMeta("prop", n/series[groupKey(&c.rows[0])])
		out = append(out, r)
	}
	return out, nil
}
