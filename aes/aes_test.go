// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aes

import (
	"errors"
	"math"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-gglayer/ggerr"
)

var cars = new(table.Builder).
	Add("mpg", []float64{21, 22.8, math.NaN()}).
	Add("cyl", []int{6, 4, 8}).
	Add("model", []string{"mazda", "datsun", "hornet"}).
	Add("displacement", []float64{160, 108, 258}).
	Done()

func TestParse(t *testing.T) {
	for name, want := range map[string]Aes{"x": X, "colour": Color, "COLOR": Color, "lty": Linetype} {
		a, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, want, a)
	}
	_, err := Parse("colr")
	require.Error(t, err)
	assert.True(t, ggerr.IsMapping(err))
	var ue *UnknownAestheticError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "colr", ue.Name)
}

func TestNewMapping(t *testing.T) {
	m, err := NewMapping(map[string]any{"x": "mpg", "colour": Derived("factor(cyl)"), "size": 3})
	require.NoError(t, err)
	assert.Equal(t, []Aes{Color, Size, X}, m.Aesthetics())
	col, ok := m.ColumnOf(X)
	assert.True(t, ok)
	assert.Equal(t, "mpg", col)

	_, err = NewMapping(map[string]any{"x": []string{"a"}})
	assert.True(t, ggerr.IsMapping(err))
	_, err = NewMapping(map[string]any{"bogus": "mpg"})
	assert.True(t, ggerr.IsMapping(err))
}

func TestResolve(t *testing.T) {
	plot := MustMapping(map[string]any{"x": "mpg", "y": "cyl"})
	layer := MustMapping(map[string]any{"y": "displacement", "color": "model"})

	eff := Resolve(plot, layer, true)
	assert.Equal(t, Mapping{X: Col("mpg"), Y: Col("displacement"), Color: Col("model")}, eff)
	// Inputs are untouched.
	assert.Equal(t, Col("cyl"), plot[Y])

	assert.Equal(t, layer, Resolve(plot, layer, false))
	assert.Equal(t, Mapping{}, Resolve(plot, nil, false))
	assert.Equal(t, plot, Resolve(plot, nil, true))
}

func TestValidateSuggestions(t *testing.T) {
	err := Validate(MustMapping(map[string]any{"x": "mpq"}), cars)
	require.Error(t, err)
	assert.True(t, ggerr.IsValidation(err))
	var ce *UnknownColumnError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "mpq", ce.Column)
	assert.Equal(t, []string{"mpg"}, ce.Suggestions)
	assert.Equal(t, []string{"mpg", "cyl", "model", "displacement"}, ce.Available)
	assert.Contains(t, err.Error(), `did you mean "mpg"?`)

	// Too far away to suggest.
	err = Validate(MustMapping(map[string]any{"y": "horsepower"}), cars)
	require.True(t, errors.As(err, &ce))
	assert.Empty(t, ce.Suggestions)
}

func TestValidateColorHint(t *testing.T) {
	for _, lit := range []string{"#ff0000", "steelblue", "grey50"} {
		err := Validate(MustMapping(map[string]any{"fill": lit}), cars)
		var ce *UnknownColumnError
		require.True(t, errors.As(err, &ce), lit)
		assert.Contains(t, ce.Hint, "looks like a color", lit)
	}
	err := Validate(MustMapping(map[string]any{"color": "#nothex"}), cars)
	var ce *UnknownColumnError
	require.True(t, errors.As(err, &ce))
	assert.NotEmpty(t, ce.Hint)

	// No hint for non-color aesthetics.
	err = Validate(MustMapping(map[string]any{"label": "#ff0000"}), cars)
	ce = nil
	require.True(t, errors.As(err, &ce))
	assert.Empty(t, ce.Hint)
}

func TestValidateDerived(t *testing.T) {
	assert.NoError(t, Validate(Mapping{Y: Derived("mpg / cyl")}, cars))
	err := Validate(Mapping{Y: Derived("mpg / cyll")}, cars)
	assert.True(t, ggerr.IsValidation(err))

	// A misspelled column inside an expression is reported like a
	// misspelled column mapping.
	var ce *UnknownColumnError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, Y, ce.Aes)
	assert.Equal(t, "cyll", ce.Column)
	assert.Equal(t, "mpg / cyll", ce.Expr)
	assert.Equal(t, []string{"cyl"}, ce.Suggestions)
	assert.Equal(t, cars.Columns(), ce.Available)
	assert.Contains(t, err.Error(), `did you mean "cyl"?`)
	assert.Contains(t, err.Error(), "available columns: mpg, cyl, model, displacement")

	err = Validate(Mapping{X: Derived(`log(col("displacment"))`)}, cars)
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"displacement"}, ce.Suggestions)

	// Other compile errors are not column errors.
	err = Validate(Mapping{Y: Derived("mpg +")}, cars)
	assert.True(t, ggerr.IsValidation(err))
	assert.False(t, errors.As(err, &ce))

	_, err = Evaluate(Mapping{Y: Derived("log(mpgg)")}, cars)
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"mpg"}, ce.Suggestions)
}

func TestSuggest(t *testing.T) {
	cands := []string{"alpha", "alpah", "alphas", "alp", "beta", "Alpha1"}
	assert.Equal(t, []string{"alpha", "alphas", "Alpha1"}, Suggest("alpha", cands))
	assert.Empty(t, Suggest("zzz", cands))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
	assert.Equal(t, 0, levenshtein("", ""))
}

func TestEvaluate(t *testing.T) {
	m := Mapping{X: Col("mpg"), Y: Derived("displacement / 2"), Color: Col("model"), Size: Lit(2.0)}
	recs, err := Evaluate(m, cars)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, 21.0, recs[0].X)
	assert.Equal(t, 80.0, recs[0].Y)
	assert.Equal(t, "mazda", recs[0].Color)
	assert.Equal(t, 2.0, recs[2].Size)
	assert.Nil(t, recs[2].X)
	assert.Equal(t, 2, recs[2].Row)

	_, err = Evaluate(Mapping{X: Col("nope")}, cars)
	assert.True(t, ggerr.IsValidation(err))
}

func TestFamily(t *testing.T) {
	for _, a := range []Aes{X, XEnd, XMin, XMax} {
		assert.True(t, a.IsPositional(), a)
		assert.Equal(t, X, a.Family(), a)
	}
	assert.True(t, YMax.IsPositional())
	assert.Equal(t, Y, YMax.Family())
	assert.False(t, Color.IsPositional())
	assert.Equal(t, Color, Color.Family())
}
