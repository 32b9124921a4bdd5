// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapEnv map[string]any

func (m mapEnv) Lookup(col string) any { return m[col] }

var testSchema = Schema{"x": Number, "y": Number, "cyl": Number, "name": String, "a b": Number}

func TestEval(t *testing.T) {
	env := mapEnv{"x": 2.0, "y": 8, "cyl": 6.0, "name": "mazda", "a b": 10.0}
	try := func(src string, want any) {
		t.Helper()
		e, err := Compile(src, testSchema)
		if err != nil {
			t.Errorf("%s: unexpected compile error %s", src, err)
			return
		}
		if have := e.Eval(env); have != want {
			t.Errorf("%s: want %v, have %v", src, want, have)
		}
	}

	try(`x`, 2.0)
	try(`x + y`, 10.0)
	try(`y / x`, 4.0)
	try(`y % 3`, 2.0)
	try(`-x`, -2.0)
	try(`pow(x, 3)`, 8.0)
	try(`log2(8)`, 3.0)
	try(`sqrt(y * x)`, 4.0)
	try(`max(x, y)`, 8.0)
	try(`factor(cyl)`, "6")
	try(`name + "!"`, "mazda!")
	try(`col("a b") * 2`, 20.0)
	try(`x < y`, true)
	try(`x == 2 && name == "mazda"`, true)
	try(`!(x > 1) || false`, false)
	try(`ifelse(x > 1, "big", "small")`, "big")
	try(`NA`, nil)
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{
		`z`,
		`x + name`,
		`x && y`,
		`log(name)`,
		`pow(x)`,
		`col(x)`,
		`nosuch(x)`,
		`x[1]`,
		`x +`,
	} {
		_, err := Compile(src, testSchema)
		assert.Error(t, err, src)
	}
}

func TestColumns(t *testing.T) {
	e, err := Compile(`log(y) + x * col("a b")`, testSchema)
	require.NoError(t, err)
	assert.Equal(t, []string{"a b", "x", "y"}, e.Columns())
	assert.Equal(t, Number, e.Type())
}

func TestSchemaOf(t *testing.T) {
	tab := new(table.Builder).
		Add("f", []float64{1, math.NaN()}).
		Add("i", []int{1, 2}).
		Add("s", []string{"a", "b"}).
		Add("b", []bool{true, false}).
		Add("anys", []any{nil, "q"}).
		Done()
	s := SchemaOf(tab)
	assert.Equal(t, Schema{"f": Number, "i": Number, "s": String, "b": Bool, "anys": String}, s)

	e, err := Compile(`f * 2`, s)
	require.NoError(t, err)
	assert.Equal(t, 2.0, e.Eval(Row{tab, 0}))
	assert.Nil(t, e.Eval(Row{tab, 1}))
}

func TestUndefinedColumn(t *testing.T) {
	for src, name := range map[string]string{
		`log(yy) + x`:     "yy",
		`col("a  b")`:     "a  b",
		`ifelse(q, 1, 2)`: "q",
	} {
		_, err := Compile(src, testSchema)
		var ue *UndefinedError
		require.ErrorAs(t, err, &ue, src)
		assert.Equal(t, name, ue.Name, src)
	}

	_, err := Compile(`nosuch(x)`, testSchema)
	var ue *UndefinedError
	assert.False(t, errors.As(err, &ue), "unknown function reported as a column")
}
