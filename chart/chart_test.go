// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"errors"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/layer"
	"github.com/aclements/go-gglayer/scale"
	"github.com/aclements/go-gglayer/stat"
)

var runs = new(table.Builder).
	Add("a", []float64{1, 2, 3, 4}).
	Add("b", []float64{10, 20, 30, 40}).
	Add("g", []string{"p", "q", "p", "q"}).
	Add("n", []float64{5, 5, 5, 5}).
	Done()

func mustLayer(t *testing.T, geom string, opts ...layer.Option) layer.Spec {
	t.Helper()
	s, err := layer.New(geom, opts...)
	require.NoError(t, err)
	return s
}

func TestBuildPoint(t *testing.T) {
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b", "color": "g"})).
		Layer(mustLayer(t, "point")).
		Build()
	require.NoError(t, err)
	require.Equal(t, 1, c.NumLayers())
	l := c.Layer(0)
	require.Len(t, l.Records, 4)
	assert.Equal(t, 1.0, l.Records[0].X)
	assert.Equal(t, "p", l.Records[0].Color)

	x, ok := c.Scale(aes.X)
	require.True(t, ok)
	assert.Equal(t, scale.Continuous, x.Kind)
	assert.Equal(t, [2]float64{1, 4}, x.Domain)

	col, ok := c.ColorScale(aes.Color)
	require.True(t, ok)
	assert.False(t, col.Continuous)
	assert.Equal(t, []any{"p", "q"}, col.Levels)

	assert.Equal(t, []aes.Aes{aes.X, aes.Y, aes.Color}, c.ScaledAes())
	assert.Equal(t, "a", c.Labels().X)
	assert.Equal(t, "b", c.Labels().Y)
	assert.Len(t, c.Panels(), 1)
	assert.Equal(t, Cartesian, c.Coord().Kind)
}

func TestBuildHistogram(t *testing.T) {
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a"})).
		Layer(mustLayer(t, "histogram", layer.WithStat("", stat.Params{Bins: 3}))).
		Build()
	require.NoError(t, err)
	total := 0.0
	for _, r := range c.Layer(0).Records {
		total += r.Meta["count"].(float64)
	}
	assert.Equal(t, 4.0, total)
	_, ok := c.Scale(aes.Y)
	assert.True(t, ok)
}

func TestNumericColorIsGradient(t *testing.T) {
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b", "color": "b"})).
		Layer(mustLayer(t, "point")).
		Build()
	require.NoError(t, err)
	col, _ := c.ColorScale(aes.Color)
	assert.True(t, col.Continuous)
	assert.Equal(t, scale.ColorGradient, col.Type)
}

func TestUnknownColumn(t *testing.T) {
	_, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "aa", "y": "b"})).
		Layer(mustLayer(t, "point")).
		Build()
	require.Error(t, err)
	assert.True(t, ggerr.IsValidation(err))
	var ce *aes.UnknownColumnError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"a"}, ce.Suggestions)
}

func TestMissingAesthetic(t *testing.T) {
	_, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a"})).
		Layer(mustLayer(t, "point")).
		Build()
	require.Error(t, err)
	assert.True(t, ggerr.IsValidation(err))
	assert.Contains(t, err.Error(), "requires aesthetic y")
}

func TestQQFromY(t *testing.T) {
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"y": "b"})).
		Layer(mustLayer(t, "qq")).
		Layer(mustLayer(t, "qq_line")).
		Build()
	require.NoError(t, err)
	pts := c.Layer(0).Records
	require.Len(t, pts, 4)
	assert.Equal(t, 10.0, pts[0].Y)
	assert.Equal(t, 40.0, pts[3].Y)
	assert.Len(t, c.Layer(1).Records, 2)

	_, err = NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a"})).
		Layer(mustLayer(t, "qq")).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires aesthetic sample")
}

func TestAliasGeomSpec(t *testing.T) {
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a"})).
		Layer(layer.Spec{Geom: "scatter", Inherit: true}).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires aesthetic y")

	c, err = NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b"})).
		Layer(layer.Spec{Geom: "geom_scatter", Inherit: true}).
		Build()
	require.NoError(t, err)
	assert.Equal(t, layer.Point, c.Layer(0).Spec.Geom)
}

func TestStatMismatch(t *testing.T) {
	_, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b"})).
		Layer(mustLayer(t, "smooth", layer.WithStat("identity", stat.Params{}))).
		Build()
	require.Error(t, err)
	assert.True(t, ggerr.IsValidation(err))
}

func TestUnsupportedCoord(t *testing.T) {
	_, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b"})).
		Layer(mustLayer(t, "point")).
		Coord(Coord{Kind: "map"}).
		Build()
	require.Error(t, err)
	assert.True(t, ggerr.IsValidation(err))
	assert.Contains(t, err.Error(), "map")
}

func TestNoTable(t *testing.T) {
	_, err := NewBuilder(nil, nil).Build()
	assert.True(t, ggerr.IsValidation(err))
}

func TestFacetWrap(t *testing.T) {
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b"})).
		Layer(mustLayer(t, "point")).
		Facet(Facet{Wrap: []string{"g"}}).
		Build()
	require.NoError(t, err)
	ps := c.Panels()
	require.Len(t, ps, 2)
	assert.Equal(t, map[string]any{"g": "q"}, ps[1].Values)
	assert.Equal(t, 0, ps[1].Row)
	assert.Equal(t, 1, ps[1].Col)

	for _, r := range c.Layer(0).Records {
		want := 0
		if r.X == 2.0 || r.X == 4.0 {
			want = 1
		}
		assert.Equal(t, want, r.Panel, "x=%v", r.X)
	}
}

func TestFacetErrors(t *testing.T) {
	b := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b"})).Layer(mustLayer(t, "point"))
	_, err := b.Facet(Facet{Wrap: []string{"gg"}}).Build()
	assert.True(t, ggerr.IsValidation(err))
	_, err = b.Facet(Facet{Wrap: []string{"g"}, Rows: []string{"g"}}).Build()
	assert.True(t, ggerr.IsValidation(err))
}

func TestFacetGrid(t *testing.T) {
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b"})).
		Layer(mustLayer(t, "point")).
		Facet(Facet{Rows: []string{"g"}, Cols: []string{"n"}}).
		Build()
	require.NoError(t, err)
	ps := c.Panels()
	require.Len(t, ps, 2)
	assert.Equal(t, 1, ps[1].Row)
	assert.Equal(t, 0, ps[1].Col)
}

func TestFlip(t *testing.T) {
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b"})).
		Layer(mustLayer(t, "point")).
		Scale(aes.X, scale.Config{Limits: []any{0.0, 5.0}}).
		Coord(Coord{Kind: "coord_flip"}).
		Build()
	require.NoError(t, err)
	r := c.Layer(0).Records[0]
	assert.Equal(t, 10.0, r.X)
	assert.Equal(t, 1.0, r.Y)

	x, _ := c.Scale(aes.X)
	assert.Equal(t, [2]float64{10, 40}, x.Domain)
	y, _ := c.Scale(aes.Y)
	assert.Equal(t, [2]float64{0, 5}, y.Domain)
}

func TestCoordTrans(t *testing.T) {
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b"})).
		Layer(mustLayer(t, "point")).
		Coord(Coord{Kind: Trans, YTrans: "log10"}).
		Build()
	require.NoError(t, err)
	y, _ := c.Scale(aes.Y)
	assert.Equal(t, "log10", y.Transform.Name)
	assert.InDelta(t, 1, y.Domain[0], 1e-12)

	_, err = NewBuilder(runs, nil).Coord(Coord{Kind: Trans, XTrans: "cube"}).Build()
	assert.True(t, ggerr.IsValidation(err))
}

func TestDegenerateDomain(t *testing.T) {
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "n", "y": "b"})).
		Layer(mustLayer(t, "point")).
		Build()
	require.NoError(t, err)
	x, _ := c.Scale(aes.X)
	assert.Equal(t, [2]float64{5, 6}, x.Domain)
}

func TestPanicIsCompilationError(t *testing.T) {
	boom := func(float64) float64 { panic("boom") }
	_, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a"})).
		Layer(mustLayer(t, "function", layer.WithStat("function", stat.Params{Fn: boom}))).
		Build()
	require.Error(t, err)
	assert.True(t, ggerr.IsCompilation(err))
	assert.True(t, errors.Is(err, ggerr.ErrCompilation))
	assert.Contains(t, err.Error(), "boom")
}

func TestStatErrorIsReported(t *testing.T) {
	_, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a"})).
		Layer(mustLayer(t, "histogram", layer.WithStat("", stat.Params{Bins: -1}))).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layer 0 (histogram)")
}

func TestFrozenAccessors(t *testing.T) {
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b"})).
		Layer(mustLayer(t, "point")).
		Labels(Labels{Title: "runs", Aes: map[string]string{"x": "A"}}).
		Theme(map[string]any{"base_size": 11}).
		Guide(aes.Color, "none").
		Annotate("text", map[string]any{"label": "hi"}).
		Build()
	require.NoError(t, err)

	l := c.Layer(0)
	l.Records[0].X = 99.0
	l.Records[0].SetMeta("k", 1)
	assert.Equal(t, 1.0, c.Layer(0).Records[0].X)
	assert.Nil(t, c.Layer(0).Records[0].Meta)

	c.Labels().Aes["x"] = "changed"
	assert.Equal(t, "A", c.Labels().Aes["x"])
	c.Theme()["base_size"] = 20
	assert.Equal(t, 11, c.Theme()["base_size"])
	c.Guides()["color"] = "legend"
	assert.Equal(t, "none", c.Guides()["color"])
	c.Annotations()[0].Params["label"] = "bye"
	assert.Equal(t, "hi", c.Annotations()[0].Params["label"])
	assert.Equal(t, "runs", c.Labels().Title)
}

func TestLayerData(t *testing.T) {
	other := new(table.Builder).
		Add("a", []float64{0, 10}).
		Add("b", []float64{0, 0}).
		Done()
	c, err := NewBuilder(runs, aes.MustMapping(map[string]any{"x": "a", "y": "b"})).
		Layer(mustLayer(t, "point")).
		Layer(mustLayer(t, "line", layer.WithData(other))).
		Facet(Facet{Wrap: []string{"g"}}).
		Build()
	require.NoError(t, err)
	// The second layer has no facet column, so it repeats per panel.
	assert.Len(t, c.Layer(1).Records, 4)
	x, _ := c.Scale(aes.X)
	assert.Equal(t, [2]float64{0, 10}, x.Domain)
}
