// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aes binds aesthetics to table columns.
//
// An aesthetic is a named visual channel: x, y, color, fill, size, and
// so on. A Mapping binds aesthetics to expressions that are evaluated
// against each row of a table: a column reference (Col), a constant
// (Lit), or a derived expression (Derived) compiled by package expr.
//
// A chart has a plot-level mapping and each layer may have its own.
// Resolve combines the two according to the layer's inherit flag,
// Validate checks the result against a table, and Evaluate produces
// one render.Record per table row.
package aes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/render"
)

// Aes is an aesthetic name.
type Aes string

const (
	X         Aes = "x"
	Y         Aes = "y"
	XEnd      Aes = "xend"
	YEnd      Aes = "yend"
	XMin      Aes = "xmin"
	XMax      Aes = "xmax"
	YMin      Aes = "ymin"
	YMax      Aes = "ymax"
	Color     Aes = "color"
	Fill      Aes = "fill"
	Size      Aes = "size"
	Alpha     Aes = "alpha"
	Shape     Aes = "shape"
	Linetype  Aes = "linetype"
	Linewidth Aes = "linewidth"
	Label     Aes = "label"
	Weight    Aes = "weight"
	Group     Aes = "group"
	Width     Aes = "width"
	Sample    Aes = "sample"
	Z         Aes = "z"
)

// All lists every recognized aesthetic.
var All = func() []Aes {
	all := make([]Aes, len(render.Fields))
	for i, f := range render.Fields {
		all[i] = Aes(f)
	}
	return all
}()

var known = func() map[Aes]bool {
	m := make(map[Aes]bool)
	for _, a := range All {
		m[a] = true
	}
	return m
}()

var aliases = map[string]Aes{
	"colour": Color,
	"col":    Color,
	"lwd":    Linewidth,
	"lty":    Linetype,
	"pch":    Shape,
}

// UnknownAestheticError reports an unrecognized aesthetic name.
type UnknownAestheticError struct {
	Name string
}

func (e *UnknownAestheticError) Error() string {
	names := make([]string, len(All))
	for i, a := range All {
		names[i] = string(a)
	}
	return fmt.Sprintf("unsupported aesthetic %q (known: %s)", e.Name, strings.Join(names, ", "))
}

// Parse returns the aesthetic named name, accepting the usual
// aliases (colour, lty, ...). Unknown names are mapping errors.
func Parse(name string) (Aes, error) {
	a := Aes(strings.ToLower(name))
	if known[a] {
		return a, nil
	}
	if a, ok := aliases[string(a)]; ok {
		return a, nil
	}
	return "", ggerr.Mapping(&UnknownAestheticError{name})
}

// IsPositional reports whether a is one of the x- or y-family
// aesthetics that are mapped to coordinates.
func (a Aes) IsPositional() bool {
	switch a {
	case X, Y, XEnd, YEnd, XMin, XMax, YMin, YMax:
		return true
	}
	return false
}

// Family returns the positional axis aesthetic of a ("x" for xmin,
// xend, ...) or a itself for non-positional aesthetics.
func (a Aes) Family() Aes {
	switch a {
	case X, XEnd, XMin, XMax:
		return X
	case Y, YEnd, YMin, YMax:
		return Y
	}
	return a
}

// Mapping binds aesthetics to expressions.
type Mapping map[Aes]Expr

// NewMapping builds a Mapping from loosely typed values. Keys must be
// aesthetic names. A string value is a column reference, an Expr is
// used as is, and a number or bool is a constant. Any other value is a
// mapping error.
func NewMapping(m map[string]any) (Mapping, error) {
	out := make(Mapping, len(m))
	for k, v := range m {
		a, err := Parse(k)
		if err != nil {
			return nil, err
		}
		switch v := v.(type) {
		case Expr:
			out[a] = v
		case string:
			out[a] = Col(v)
		case float64, float32, int, int64, int32, bool:
			out[a] = Lit(v)
		default:
			return nil, ggerr.Mappingf("unsupported mapping value type %T for aesthetic %s", v, a)
		}
	}
	return out, nil
}

// MustMapping is like NewMapping but panics on error. It is intended
// for literal mappings in tests and examples.
func MustMapping(m map[string]any) Mapping {
	out, err := NewMapping(m)
	if err != nil {
		panic(err)
	}
	return out
}

// Aesthetics returns the aesthetics bound by m, sorted.
func (m Mapping) Aesthetics() []Aes {
	as := make([]Aes, 0, len(m))
	for a := range m {
		as = append(as, a)
	}
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	return as
}

// Has reports whether m binds a.
func (m Mapping) Has(a Aes) bool {
	_, ok := m[a]
	return ok
}

// Copy returns a shallow copy of m. Expressions are immutable, so the
// copy is independent of m.
func (m Mapping) Copy() Mapping {
	out := make(Mapping, len(m))
	for a, e := range m {
		out[a] = e
	}
	return out
}

// ColumnOf returns the column name bound to a if a is bound to a plain
// column reference.
func (m Mapping) ColumnOf(a Aes) (string, bool) {
	c, ok := m[a].(colRef)
	return string(c), ok
}

// Columns returns the sorted set of columns referenced by m.
func (m Mapping) Columns() []string {
	set := make(map[string]bool)
	for _, e := range m {
		for _, c := range e.Columns() {
			set[c] = true
		}
	}
	cols := make([]string, 0, len(set))
	for c := range set {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func (m Mapping) String() string {
	var b strings.Builder
	b.WriteString("aes(")
	for i, a := range m.Aesthetics() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", a, m[a])
	}
	b.WriteString(")")
	return b.String()
}

// Resolve returns the effective mapping of a layer. If inherit is
// true, it starts from a copy of plot and overrides it with layer's
// entries. Otherwise it is exactly layer, or empty if layer is nil.
// Neither argument is modified.
func Resolve(plot, layer Mapping, inherit bool) Mapping {
	if !inherit {
		if layer == nil {
			return Mapping{}
		}
		return layer.Copy()
	}
	out := plot.Copy()
	for a, e := range layer {
		out[a] = e
	}
	return out
}
