// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/palette"
	"github.com/aclements/go-gglayer/render"
)

// UnknownColumnError reports a mapping to a column that is not in the
// table.
type UnknownColumnError struct {
	Aes       Aes
	Column    string
	Available []string

	// Expr is the derived expression that refers to Column, if
	// the reference is not a plain column mapping.
	Expr string

	// Suggestions are the available columns closest to Column by
	// edit distance, best first.
	Suggestions []string

	// Hint is an extra explanation, such as a note that Column
	// looks like a literal color.
	Hint string
}

func (e *UnknownColumnError) Error() string {
	var b strings.Builder
	if e.Aes != "" {
		fmt.Fprintf(&b, "column %q mapped to %s not found", e.Column, e.Aes)
	} else {
		fmt.Fprintf(&b, "column %q not found", e.Column)
	}
	if e.Expr != "" {
		fmt.Fprintf(&b, " in expression %q", e.Expr)
	}
	fmt.Fprintf(&b, "; available columns: %s", strings.Join(e.Available, ", "))
	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		fmt.Fprintf(&b, "; did you mean %s?", strings.Join(quoted, " or "))
	}
	if e.Hint != "" {
		b.WriteString("; ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// Validate checks that every column referenced by m exists in t and
// that every derived expression compiles against t's schema.
func Validate(m Mapping, t *table.Table) error {
	for _, a := range m.Aesthetics() {
		if err := validateExpr(a, m[a], t); err != nil {
			return err
		}
	}
	return nil
}

func validateExpr(a Aes, e Expr, t *table.Table) error {
	if d, ok := e.(derived); ok {
		_, err := d.compile(t)
		return forAes(a, err)
	}
	for _, c := range e.Columns() {
		if t.Column(c) == nil {
			return ggerr.Validation("mapping", ColumnError(a, c, t.Columns()))
		}
	}
	return nil
}

// ColumnError builds an UnknownColumnError for column, filling in
// suggestions from available and, for color and fill, a hint when
// column looks like a literal color.
func ColumnError(a Aes, column string, available []string) *UnknownColumnError {
	e := &UnknownColumnError{
		Aes:         a,
		Column:      column,
		Available:   available,
		Suggestions: Suggest(column, available),
	}
	if (a == Color || a == Fill) && looksLikeColor(column) {
		e.Hint = fmt.Sprintf("%q looks like a color value, not a column; use aes.Lit(%q) or set the layer's constant %s parameter instead", column, column, a)
	}
	return e
}

// forAes attaches a to an UnknownColumnError from binding an
// expression and wraps it as a validation error.
func forAes(a Aes, err error) error {
	ce, ok := err.(*UnknownColumnError)
	if !ok {
		return err
	}
	e := ColumnError(a, ce.Column, ce.Available)
	e.Expr = ce.Expr
	return ggerr.Validation("mapping", e)
}

func looksLikeColor(s string) bool {
	return strings.HasPrefix(s, "#") || palette.LooksLikeColor(s)
}

// Suggest returns up to three candidates closest to name by
// case-insensitive edit distance. A candidate qualifies only if it is
// within ceil(len(name)/3) edits.
func Suggest(name string, candidates []string) []string {
	limit := (len(name) + 2) / 3
	if limit < 1 {
		limit = 1
	}
	type scored struct {
		name string
		dist int
		idx  int
	}
	var found []scored
	lname := strings.ToLower(name)
	for i, c := range candidates {
		d := levenshtein(lname, strings.ToLower(c))
		if d <= limit {
			found = append(found, scored{c, d, i})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].idx < found[j].idx
	})
	if len(found) > 3 {
		found = found[:3]
	}
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.name
	}
	return out
}

// levenshtein returns the edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// Evaluate evaluates m against every row of t, producing one record
// per row with Row set to the row index.
func Evaluate(m Mapping, t *table.Table) ([]render.Record, error) {
	type binding struct {
		name string
		fn   func(int) any
	}
	var bs []binding
	for _, a := range m.Aesthetics() {
		fn, err := m[a].bind(t)
		if err != nil {
			return nil, forAes(a, err)
		}
		bs = append(bs, binding{string(a), fn})
	}
	recs := make([]render.Record, t.Len())
	for i := range recs {
		recs[i].Row = i
		for _, b := range bs {
			recs[i].Set(b.name, b.fn(i))
		}
	}
	return recs, nil
}
