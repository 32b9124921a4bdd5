// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aes

import (
	"errors"
	"fmt"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-gglayer/expr"
	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/render"
)

// An Expr is the right-hand side of an aesthetic binding. It is one
// of a column reference (Col), a literal (Lit), or a derived
// expression (Derived).
type Expr interface {
	// Columns returns the table columns the expression reads.
	Columns() []string

	// bind prepares the expression for evaluation against t.
	bind(t *table.Table) (func(row int) any, error)

	String() string
}

// Col returns an expression referring to the named column.
func Col(name string) Expr { return colRef(name) }

type colRef string

func (c colRef) Columns() []string { return []string{string(c)} }

func (c colRef) bind(t *table.Table) (func(int) any, error) {
	col := t.Column(string(c))
	if col == nil {
		return nil, &UnknownColumnError{Column: string(c), Available: t.Columns()}
	}
	return func(i int) any { return render.ColumnValue(col, i) }, nil
}

func (c colRef) String() string { return string(c) }

// Lit returns an expression with the constant value v.
func Lit(v any) Expr { return literal{v} }

type literal struct {
	v any
}

func (literal) Columns() []string { return nil }

func (l literal) bind(*table.Table) (func(int) any, error) {
	return func(int) any { return l.v }, nil
}

func (l literal) String() string { return fmt.Sprintf("I(%v)", l.v) }

// Derived returns an expression computed from other columns, written
// in the syntax of package expr, such as "log(price)" or "factor(cyl)".
// It is compiled against the table's schema when the mapping is
// validated or evaluated.
func Derived(src string) Expr { return derived(src) }

type derived string

func (d derived) compile(t *table.Table) (*expr.Expr, error) {
	e, err := expr.Compile(string(d), expr.SchemaOf(t))
	if err != nil {
		var ue *expr.UndefinedError
		if errors.As(err, &ue) {
			return nil, &UnknownColumnError{Column: ue.Name, Available: t.Columns(), Expr: string(d)}
		}
		return nil, ggerr.Validationf("mapping", "bad expression %q: %v", string(d), err)
	}
	return e, nil
}

// Columns is unknown until the expression is compiled against a
// schema, so derived expressions report no columns here.
func (d derived) Columns() []string { return nil }

func (d derived) bind(t *table.Table) (func(int) any, error) {
	e, err := d.compile(t)
	if err != nil {
		return nil, err
	}
	return func(i int) any { return e.Eval(expr.Row{T: t, I: i}) }, nil
}

func (d derived) String() string { return string(d) }
