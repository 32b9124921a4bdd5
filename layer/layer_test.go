// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/position"
	"github.com/aclements/go-gglayer/stat"
)

func TestParseGeom(t *testing.T) {
	for name, want := range map[string]Geom{
		"point":      Point,
		"geom_bar":   Bar,
		"Histogram":  Histogram,
		"scatter":    Point,
		"qq_line":    QQLine,
		"density2d":  Density2D,
		" boxplot  ": Boxplot,
	} {
		g, err := ParseGeom(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, g, name)
	}
	_, err := ParseGeom("sankey")
	require.Error(t, err)
	assert.True(t, ggerr.IsValidation(err))
	assert.Contains(t, err.Error(), "point")
}

func TestDefaults(t *testing.T) {
	s, err := New("histogram")
	require.NoError(t, err)
	assert.Equal(t, stat.Bin, s.Stat.Kind)
	assert.Equal(t, position.Stack, s.Position.Kind)
	assert.True(t, s.Inherit)
	assert.Equal(t, []aes.Aes{aes.X}, s.Required())

	s, err = New("point")
	require.NoError(t, err)
	assert.Equal(t, stat.Identity, s.Stat.Kind)
	assert.Equal(t, position.Identity, s.Position.Kind)
	assert.Equal(t, []aes.Aes{aes.X, aes.Y}, s.Required())

	s, err = New("point", WithStat("qq", stat.Params{}))
	require.NoError(t, err)
	assert.Equal(t, []aes.Aes{aes.Sample}, s.Required())
}

func TestMissing(t *testing.T) {
	s, err := New("qq")
	require.NoError(t, err)
	_, missing := s.Missing(aes.Mapping{aes.Sample: aes.Col("v")})
	assert.False(t, missing)
	_, missing = s.Missing(aes.Mapping{aes.Y: aes.Col("v")})
	assert.False(t, missing)
	a, missing := s.Missing(aes.Mapping{aes.X: aes.Col("v")})
	assert.True(t, missing)
	assert.Equal(t, aes.Sample, a)

	// y does not stand in for x.
	s, err = New("histogram")
	require.NoError(t, err)
	a, missing = s.Missing(aes.Mapping{aes.Y: aes.Col("v")})
	assert.True(t, missing)
	assert.Equal(t, aes.X, a)
}

func TestCanonical(t *testing.T) {
	s := Spec{Geom: "scatter"}
	assert.Equal(t, []aes.Aes{aes.X, aes.Y}, s.Required())
	assert.NoError(t, s.Check())
	assert.Equal(t, Point, s.Canonical().Geom)
	assert.Equal(t, Geom("scatter"), s.Geom)

	s = Spec{Geom: "sankey"}
	assert.Equal(t, Geom("sankey"), s.Canonical().Geom)
	assert.True(t, ggerr.IsValidation(s.Check()))
}

func TestCheckStat(t *testing.T) {
	s, err := New("smooth")
	require.NoError(t, err)
	assert.NoError(t, s.Check())

	s, err = New("smooth", WithStat("identity", stat.Params{}))
	require.NoError(t, err)
	err = s.Check()
	require.Error(t, err)
	assert.True(t, ggerr.IsValidation(err))

	s, err = New("boxplot", WithStat("identity", stat.Params{}))
	require.NoError(t, err)
	assert.NoError(t, s.Check())

	s, err = New("line", WithStat("smooth", stat.Params{}))
	require.NoError(t, err)
	assert.NoError(t, s.Check())
}

func TestEffectiveParams(t *testing.T) {
	s, err := New("histogram",
		WithStatParams(stat.Params{Bins: 10, Binwidth: 2}),
		WithStat("", stat.Params{Bins: 20}),
		WithPositionParams(position.Params{NudgeX: 1}),
		WithPosition("nudge", position.Params{NudgeY: 2}),
	)
	require.NoError(t, err)
	assert.Equal(t, stat.Bin, s.Stat.Kind)
	eff := s.EffectiveStat()
	assert.Equal(t, 20, eff.Params.Bins)
	assert.Equal(t, 2.0, eff.Params.Binwidth)

	pos := s.EffectivePosition()
	assert.Equal(t, position.Nudge, pos.Kind)
	assert.Equal(t, 1.0, pos.Params.NudgeX)
	assert.Equal(t, 2.0, pos.Params.NudgeY)
}

func TestOptions(t *testing.T) {
	m := aes.MustMapping(map[string]any{"x": "a"})
	s, err := New("point", WithMapping(m), NoInherit(), WithParam("alpha", 0.5), WithParam("size", 2))
	require.NoError(t, err)
	assert.False(t, s.Inherit)
	assert.Equal(t, m, s.Mapping)
	assert.Equal(t, map[string]any{"alpha": 0.5, "size": 2}, s.Params)

	s, err = New("point", WithStat("contour_thing", stat.Params{}))
	require.NoError(t, err)
	assert.Equal(t, stat.Unimplemented, s.Stat.Kind)
	assert.Equal(t, "contour_thing", s.Stat.Name)
	assert.Empty(t, s.Required())
}
