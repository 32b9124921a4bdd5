// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr compiles derived column expressions.
//
// Expressions use Go syntax. Identifiers name table columns; columns
// whose names are not identifiers can be referenced with col("name").
// The supported operators are + (numbers and strings), - * / %,
// comparisons, && || !, and the functions log, log10, log2, log1p,
// exp, sqrt, abs, floor, ceil, round, sin, cos, tan, pow, min, max,
// factor (convert to a discrete string value), and ifelse. The
// identifiers pi, NA, true, and false are predeclared unless a column
// shadows them.
//
// Expressions are type-checked against a Schema at compile time.
package expr

import (
	"reflect"
	"sort"
	"time"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-gglayer/render"
)

// Type is the type of a column or expression.
type Type int

const (
	Number Type = iota
	String
	Bool
)

func (t Type) String() string {
	switch t {
	case Number:
		return "number"
	case String:
		return "string"
	case Bool:
		return "bool"
	}
	return "unknown"
}

// A Schema maps column names to their types.
type Schema map[string]Type

var timeType = reflect.TypeOf(time.Time{})

// SchemaOf infers the schema of t from its column types. Columns of
// type []interface{} are typed by their first non-null value.
func SchemaOf(t *table.Table) Schema {
	s := make(Schema)
	for _, name := range t.Columns() {
		s[name] = columnType(t.Column(name))
	}
	return s
}

func columnType(col table.Slice) Type {
	if vs, ok := col.([]any); ok {
		for _, v := range vs {
			if render.IsNull(v) {
				continue
			}
			switch v.(type) {
			case bool:
				return Bool
			case string:
				return String
			}
			if render.IsNumeric(v) {
				return Number
			}
			return String
		}
		return Number
	}
	et := reflect.TypeOf(col).Elem()
	if et == timeType {
		return Number
	}
	for et.Kind() == reflect.Ptr {
		et = et.Elem()
	}
	switch et.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number
	case reflect.Bool:
		return Bool
	}
	return String
}

// Env supplies column values while evaluating an expression.
type Env interface {
	Lookup(col string) any
}

// Row is an Env for one row of a table.
type Row struct {
	T *table.Table
	I int
}

func (r Row) Lookup(col string) any {
	c := r.T.Column(col)
	if c == nil {
		return nil
	}
	return render.ColumnValue(c, r.I)
}

// Expr is a compiled expression.
type Expr struct {
	src  string
	typ  Type
	fn   func(Env) any
	cols []string
}

// Compile parses and type-checks src against schema.
func Compile(src string, schema Schema) (*Expr, error) {
	c := newCompiler(schema)
	n, err := c.compile(src)
	if err != nil {
		return nil, err
	}
	cols := make([]string, 0, len(c.cols))
	for col := range c.cols {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return &Expr{src, n.typ(), n.value(), cols}, nil
}

// Eval evaluates e in env. Numeric results are float64, with NaN
// returned as nil; string results are string; boolean results are
// bool.
func (e *Expr) Eval(env Env) any {
	return e.fn(env)
}

// Type returns the result type of e.
func (e *Expr) Type() Type { return e.typ }

// Columns returns the sorted names of the columns e references.
func (e *Expr) Columns() []string { return e.cols }

func (e *Expr) String() string { return e.src }
