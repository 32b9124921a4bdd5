// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package position implements position adjustments, which resolve
// overlap between the records of a layer after its stat has run.
//
// Adjustments never modify their input: Apply returns adjusted copies.
// On a continuous axis the adjustment moves the position aesthetics
// directly. On a discrete axis, where positions are level names, it
// records the shift in the record's XOffset or YOffset, in units of
// one level slot.
package position

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/aclements/go-gglayer/diag"
	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/render"
)

// Kind is a position adjustment.
type Kind int

const (
	Identity Kind = iota
	Dodge
	Dodge2
	Stack
	Fill
	Jitter
	Nudge

	// Unimplemented is any kind name that is not recognized. It
	// behaves like Identity.
	Unimplemented
)

var kindNames = [...]string{
	Identity:      "identity",
	Dodge:         "dodge",
	Dodge2:        "dodge2",
	Stack:         "stack",
	Fill:          "fill",
	Jitter:        "jitter",
	Nudge:         "nudge",
	Unimplemented: "unimplemented",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the position kind named name, with an optional
// "position_" prefix. Unrecognized names return Unimplemented.
func ParseKind(name string) Kind {
	n := strings.TrimPrefix(strings.ToLower(name), "position_")
	if n == "" {
		return Identity
	}
	for k, kn := range kindNames {
		if kn == n && Kind(k) != Unimplemented {
			return Kind(k)
		}
	}
	return Unimplemented
}

// Params are the options of every position kind.
type Params struct {
	// Width is the total width that Dodge and Dodge2 divide among
	// the records at one x, as a fraction of the x resolution.
	// Default 0.9.
	Width float64

	// Padding is the fraction of each Dodge2 slot left empty.
	// Default 0.1.
	Padding float64

	// Preserve is "total" (the default), dividing each x's width
	// among the groups present at that x, or "single", giving every
	// group the width of one group at the most crowded x.
	Preserve string

	// Reverse reverses the group order of Dodge, Stack, and Fill.
	Reverse bool

	// VJust places y within its stacked interval: 0 at the bottom,
	// 1 (the default) at the top.
	VJust *float64

	// JitterWidth and JitterHeight bound the Jitter noise, as
	// absolute data units (or slots on a discrete axis). They
	// default to 40% of the axis resolution.
	JitterWidth, JitterHeight *float64

	// Seed makes Jitter deterministic.
	Seed *int64

	// NudgeX and NudgeY are the Nudge offsets.
	NudgeX, NudgeY float64
}

// Merge returns p overridden by every field set in over.
func (p Params) Merge(over Params) Params {
	if over.Width != 0 {
		p.Width = over.Width
	}
	if over.Padding != 0 {
		p.Padding = over.Padding
	}
	if over.Preserve != "" {
		p.Preserve = over.Preserve
	}
	if over.Reverse {
		p.Reverse = true
	}
	if over.VJust != nil {
		p.VJust = over.VJust
	}
	if over.JitterWidth != nil {
		p.JitterWidth = over.JitterWidth
	}
	if over.JitterHeight != nil {
		p.JitterHeight = over.JitterHeight
	}
	if over.Seed != nil {
		p.Seed = over.Seed
	}
	if over.NudgeX != 0 {
		p.NudgeX = over.NudgeX
	}
	if over.NudgeY != 0 {
		p.NudgeY = over.NudgeY
	}
	return p
}

// Float64 returns a pointer to v, for the optional fields of Params.
func Float64(v float64) *float64 { return &v }

// Int64 returns a pointer to v, for the optional fields of Params.
func Int64(v int64) *int64 { return &v }

// Config selects an adjustment and its parameters.
type Config struct {
	Kind Kind

	// Name is the kind name as written, for diagnostics.
	Name string

	Params Params
}

// Apply adjusts rows according to c. It returns new records and never
// modifies rows.
func Apply(c Config, rows []render.Record) ([]render.Record, error) {
	p := c.Params
	switch c.Kind {
	case Identity:
		return rows, nil
	case Dodge:
		return dodge(p, render.Clone(rows), false)
	case Dodge2:
		return dodge(p, render.Clone(rows), true)
	case Stack:
		return stack(p, render.Clone(rows), false)
	case Fill:
		return stack(p, render.Clone(rows), true)
	case Jitter:
		return jitter(p, render.Clone(rows))
	case Nudge:
		if p.NudgeX == 0 && p.NudgeY == 0 {
			return rows, nil
		}
		return nudge(p, render.Clone(rows)), nil
	case Unimplemented:
		name := c.Name
		if name == "" {
			name = c.Kind.String()
		}
		diag.Logger().Warn("position not implemented; leaving data unadjusted", "position", name)
		return rows, nil
	}
	return nil, ggerr.Validationf("position", "unknown position kind %d", int(c.Kind))
}

// groupKey identifies the series of r for ordering within an x.
func groupKey(r *render.Record) string {
	if !render.IsNull(r.Group) {
		return render.Key(r.Group)
	}
	parts := make([]string, 0, 4)
	for _, v := range [...]any{r.Fill, r.Color, r.Shape, r.Linetype} {
		parts = append(parts, render.Key(v))
	}
	return strings.Join(parts, "\x00")
}

// groupOrder returns the rank of every series in order of first
// appearance.
func groupOrder(rows []render.Record, reverse bool) map[string]int {
	var keys []string
	rank := make(map[string]int)
	for i := range rows {
		k := groupKey(&rows[i])
		if _, ok := rank[k]; !ok {
			rank[k] = len(keys)
			keys = append(keys, k)
		}
	}
	if reverse {
		for k, r := range rank {
			rank[k] = len(keys) - 1 - r
		}
	}
	return rank
}

// byX partitions row indexes by x, in order of first appearance.
func byX(rows []render.Record) [][]int {
	var out [][]int
	idx := make(map[string]int)
	for i := range rows {
		k := render.Key(rows[i].X)
		j, ok := idx[k]
		if !ok {
			j = len(out)
			idx[k] = j
			out = append(out, nil)
		}
		out[j] = append(out[j], i)
	}
	return out
}

// resolution returns the smallest gap between distinct numeric values
// of field, or 1 if there are fewer than two.
func resolution(rows []render.Record, field string) float64 {
	var xs []float64
	for i := range rows {
		if x, ok := render.Float(rows[i].Get(field)); ok {
			xs = append(xs, x)
		}
	}
	sort.Float64s(xs)
	res := math.Inf(1)
	for i := 1; i < len(xs); i++ {
		if d := xs[i] - xs[i-1]; d > 0 && d < res {
			res = d
		}
	}
	if math.IsInf(res, 1) {
		return 1
	}
	return res
}

func dodge(p Params, rows []render.Record, two bool) ([]render.Record, error) {
	width := p.Width
	if width == 0 {
		width = 0.9
	}
	if width < 0 {
		return nil, ggerr.Validationf("position", "dodge width must be positive, got %v", width)
	}
	padding := p.Padding
	if padding == 0 && two {
		padding = 0.1
	}
	if padding < 0 || padding >= 1 {
		return nil, ggerr.Validationf("position", "dodge2 padding must be in [0, 1), got %v", padding)
	}
	switch p.Preserve {
	case "", "total", "single":
	default:
		return nil, ggerr.Validationf("position", "unknown preserve mode %q", p.Preserve)
	}
	rank := groupOrder(rows, p.Reverse)
	res := resolution(rows, "x")

	cols := byX(rows)
	// slots[i] is the list of slot keys at cols[i], in order.
	slots := make([][]string, len(cols))
	maxN := 0
	for ci, col := range cols {
		seen := make(map[string]bool)
		for _, i := range col {
			k := groupKey(&rows[i])
			if two {
				k = fmt.Sprint(i)
			}
			if !seen[k] {
				seen[k] = true
				slots[ci] = append(slots[ci], k)
			}
		}
		if !two {
			s := slots[ci]
			sort.SliceStable(s, func(a, b int) bool { return rank[s[a]] < rank[s[b]] })
		}
		maxN = max(maxN, len(slots[ci]))
	}

	for ci, col := range cols {
		n := len(slots[ci])
		if p.Preserve == "single" {
			n = maxN
		}
		pos := make(map[string]int)
		for j, k := range slots[ci] {
			pos[k] = j
		}
		for _, i := range col {
			r := &rows[i]
			k := groupKey(r)
			if two {
				k = fmt.Sprint(i)
			}
			j := pos[k]
			frac := (float64(j)+0.5)/float64(n) - 0.5
			slot := 1 / float64(n)
			if x, ok := render.Float(r.X); ok {
				w := width * res
				if rw, ok := render.Float(r.Width); ok && rw > 0 {
					w = rw
				}
				nx := x + frac*w
				half := w * slot * (1 - padding) / 2
				r.X, r.XMin, r.XMax = nx, nx-half, nx+half
				r.Width = 2 * half
			} else if r.X != nil {
				r.XOffset += frac * width
				r.Width = width * slot * (1 - padding)
			}
		}
	}
	return rows, nil
}

func stack(p Params, rows []render.Record, fill bool) ([]render.Record, error) {
	vjust := 1.0
	if p.VJust != nil {
		vjust = *p.VJust
	}
	rank := groupOrder(rows, p.Reverse)
	for _, col := range byX(rows) {
		order := append([]int(nil), col...)
		sort.SliceStable(order, func(a, b int) bool {
			return rank[groupKey(&rows[order[a]])] < rank[groupKey(&rows[order[b]])]
		})
		var pos, neg float64
		for _, i := range order {
			r := &rows[i]
			y, ok := render.Float(r.Y)
			if !ok {
				continue
			}
			// Positive and negative values stack away from zero
			// separately.
			var from, to float64
			if y >= 0 {
				from, to = pos, pos+y
				pos = to
			} else {
				from, to = neg, neg+y
				neg = to
			}
			r.YMin, r.YMax = math.Min(from, to), math.Max(from, to)
			r.Y = from + vjust*(to-from)
		}
		if !fill {
			continue
		}
		for _, i := range order {
			r := &rows[i]
			y, ok := render.Float(r.Y)
			if !ok {
				continue
			}
			lo, hi := r.YMin.(float64), r.YMax.(float64)
			total := pos
			if hi <= 0 && lo < 0 {
				total = -neg
			}
			if total == 0 {
				continue
			}
			r.Y, r.YMin, r.YMax = y/total, lo/total, hi/total
		}
	}
	return rows, nil
}

func jitter(p Params, rows []render.Record) ([]render.Record, error) {
	var seed int64
	if p.Seed != nil {
		seed = *p.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	amount := func(v *float64, field string) (float64, error) {
		if v != nil {
			if *v < 0 {
				return 0, ggerr.Validationf("position", "jitter amount must be non-negative, got %v", *v)
			}
			return *v, nil
		}
		return 0.4 * resolution(rows, field), nil
	}
	w, err := amount(p.JitterWidth, "x")
	if err != nil {
		return nil, err
	}
	h, err := amount(p.JitterHeight, "y")
	if err != nil {
		return nil, err
	}

	for i := range rows {
		r := &rows[i]
		dx, dy := (2*rng.Float64()-1)*w, (2*rng.Float64()-1)*h
		shift(&r.X, &r.XOffset, dx, &r.XMin, &r.XMax, &r.XEnd)
		shift(&r.Y, &r.YOffset, dy, &r.YMin, &r.YMax, &r.YEnd)
		r.SetMeta("jitter_x", dx)
		r.SetMeta("jitter_y", dy)
	}
	return rows, nil
}

func nudge(p Params, rows []render.Record) []render.Record {
	for i := range rows {
		r := &rows[i]
		shift(&r.X, &r.XOffset, p.NudgeX, &r.XMin, &r.XMax, &r.XEnd)
		shift(&r.Y, &r.YOffset, p.NudgeY, &r.YMin, &r.YMax, &r.YEnd)
	}
	return rows
}

// shift moves a position by d: numerically, along with its related
// extents, if it is continuous, or via its slot offset if it is
// discrete.
func shift(v *any, off *float64, d float64, related ...*any) {
	if d == 0 || *v == nil {
		return
	}
	x, ok := render.Float(*v)
	if !ok {
		*off += d
		return
	}
	*v = x + d
	for _, rv := range related {
		if f, ok := render.Float(*rv); ok {
			*rv = f + d
		}
	}
}
