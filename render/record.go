// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render defines the render record, the per-row bag of
// resolved aesthetic values that flows from the stat engine through
// the position engine to the rendering collaborator.
package render

import "sort"

// A Record is one row of layer data after aesthetic evaluation, stat
// transformation, and position adjustment.
//
// Aesthetic fields hold nil when the aesthetic is unmapped. Values are
// float64 for continuous data and string (or another comparable type)
// for discrete data.
//
// Records are created by the stat engine and adjusted by the position
// engine, which always works on copies. After chart assembly they are
// read-only.
type Record struct {
	X, Y                   any
	XEnd, YEnd             any
	XMin, XMax, YMin, YMax any

	Color, Fill any
	Size, Alpha any
	Shape       any
	Linetype    any
	Linewidth   any
	Label       any
	Weight      any
	Group       any
	Width       any
	Sample      any
	Z           any

	// XOffset and YOffset are position adjustments for discrete
	// axes, in slot units (one slot per level). For continuous axes
	// the position engine shifts X and Y directly and leaves these
	// zero.
	XOffset, YOffset float64

	// Panel is the facet panel index, 0 when the chart is not
	// faceted.
	Panel int

	// Row is the index of the source table row, or -1 for records
	// synthesized by a stat.
	Row int

	// Meta holds algorithm-specific extras, such as "count",
	// "density", or "percent".
	Meta map[string]any
}

// Clone returns a copy of r with its own Meta map.
func (r *Record) Clone() Record {
	c := *r
	if r.Meta != nil {
		c.Meta = make(map[string]any, len(r.Meta))
		for k, v := range r.Meta {
			c.Meta[k] = v
		}
	}
	return c
}

// SetMeta sets r.Meta[key] = v, allocating Meta if needed.
func (r *Record) SetMeta(key string, v any) {
	if r.Meta == nil {
		r.Meta = make(map[string]any)
	}
	r.Meta[key] = v
}

// MetaFloat returns r.Meta[key] as a float64.
func (r *Record) MetaFloat(key string) (float64, bool) {
	if r.Meta == nil {
		return 0, false
	}
	return Float(r.Meta[key])
}

// Get returns the value of aesthetic name, or nil if name is not an
// aesthetic field of Record.
func (r *Record) Get(name string) any {
	if p := r.field(name); p != nil {
		return *p
	}
	return nil
}

// Set sets aesthetic name to v. It reports whether name is an
// aesthetic field of Record.
func (r *Record) Set(name string, v any) bool {
	p := r.field(name)
	if p == nil {
		return false
	}
	*p = v
	return true
}

func (r *Record) field(name string) *any {
	switch name {
	case "x":
		return &r.X
	case "y":
		return &r.Y
	case "xend":
		return &r.XEnd
	case "yend":
		return &r.YEnd
	case "xmin":
		return &r.XMin
	case "xmax":
		return &r.XMax
	case "ymin":
		return &r.YMin
	case "ymax":
		return &r.YMax
	case "color":
		return &r.Color
	case "fill":
		return &r.Fill
	case "size":
		return &r.Size
	case "alpha":
		return &r.Alpha
	case "shape":
		return &r.Shape
	case "linetype":
		return &r.Linetype
	case "linewidth":
		return &r.Linewidth
	case "label":
		return &r.Label
	case "weight":
		return &r.Weight
	case "group":
		return &r.Group
	case "width":
		return &r.Width
	case "sample":
		return &r.Sample
	case "z":
		return &r.Z
	}
	return nil
}

// Fields lists the aesthetic names accepted by Get and Set, in a
// fixed order.
var Fields = []string{
	"x", "y", "xend", "yend", "xmin", "xmax", "ymin", "ymax",
	"color", "fill", "size", "alpha", "shape", "linetype", "linewidth",
	"label", "weight", "group", "width", "sample", "z",
}

// MetaKeys returns the sorted keys of r.Meta.
func (r *Record) MetaKeys() []string {
	keys := make([]string, 0, len(r.Meta))
	for k := range r.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of rs.
func Clone(rs []Record) []Record {
	out := make([]Record, len(rs))
	for i := range rs {
		out[i] = rs[i].Clone()
	}
	return out
}
