// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-gglayer/render"
)

func bars(x any, ys ...float64) []render.Record {
	groups := []string{"a", "b", "c", "d", "e"}
	var out []render.Record
	for i, y := range ys {
		out = append(out, render.Record{X: x, Y: y, Fill: groups[i], Row: i})
	}
	return out
}

func ys(rows []render.Record) []float64 {
	out := make([]float64, len(rows))
	for i := range rows {
		out[i], _ = render.Float(rows[i].Y)
	}
	return out
}

func TestParseKind(t *testing.T) {
	for name, want := range map[string]Kind{
		"":                Identity,
		"stack":           Stack,
		"position_dodge2": Dodge2,
		"Fill":            Fill,
		"jitterdodge":     Unimplemented,
	} {
		assert.Equal(t, want, ParseKind(name), "ParseKind(%q)", name)
	}
}

func TestIdentity(t *testing.T) {
	in := bars("a", 3, 5, 2)
	out, err := Apply(Config{Kind: Identity}, in)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	out, err = Apply(Config{Kind: Unimplemented, Name: "jitterdodge"}, in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStack(t *testing.T) {
	in := bars("a", 3, 5, 2)
	out, err := Apply(Config{Kind: Stack}, in)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 8, 10}, ys(out))
	assert.Equal(t, 3.0, out[1].YMin)
	assert.Equal(t, 8.0, out[1].YMax)

	// Input is untouched.
	assert.Equal(t, []float64{3, 5, 2}, ys(in))
	assert.Nil(t, in[0].YMin)

	out, err = Apply(Config{Kind: Stack, Params: Params{Reverse: true}}, in)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 7, 2}, ys(out))

	out, err = Apply(Config{Kind: Stack, Params: Params{VJust: Float64(0.5)}}, in)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 5.5, 9}, ys(out))
}

func TestStackNegative(t *testing.T) {
	out, err := Apply(Config{Kind: Stack}, bars("a", 3, -1, 2, -4))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, -1, 5, -5}, ys(out))
	assert.Equal(t, -1.0, out[3].YMax)
}

func TestStackPerX(t *testing.T) {
	in := append(bars("a", 1, 2), bars("b", 10, 20)...)
	out, err := Apply(Config{Kind: Stack}, in)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 10, 30}, ys(out))
}

func TestFill(t *testing.T) {
	out, err := Apply(Config{Kind: Fill}, bars("a", 3, 5, 2))
	require.NoError(t, err)
	got := ys(out)
	assert.Equal(t, 1.0, got[2])
	assert.InDelta(t, 0.3, got[0], 1e-12)
	assert.InDelta(t, 0.8, got[1], 1e-12)
	assert.Equal(t, 0.0, out[0].YMin)
}

func TestDodgeDiscrete(t *testing.T) {
	out, err := Apply(Config{Kind: Dodge}, bars("a", 1, 2))
	require.NoError(t, err)
	assert.InDelta(t, -0.225, out[0].XOffset, 1e-12)
	assert.InDelta(t, 0.225, out[1].XOffset, 1e-12)
	assert.Equal(t, "a", out[0].X)
	assert.InDelta(t, 0.45, out[0].Width.(float64), 1e-12)
}

func TestDodgeContinuous(t *testing.T) {
	in := append(bars(1.0, 1, 2), bars(2.0, 3, 4)...)
	out, err := Apply(Config{Kind: Dodge, Params: Params{Width: 1}}, in)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, out[0].X.(float64), 1e-12)
	assert.InDelta(t, 1.25, out[1].X.(float64), 1e-12)
	assert.InDelta(t, 0.5, out[0].XMin.(float64), 1e-12)
	assert.InDelta(t, 1.0, out[0].XMax.(float64), 1e-12)
}

func TestDodgePreserveSingle(t *testing.T) {
	in := append(bars("a", 1, 2), bars("b", 3)...)
	out, err := Apply(Config{Kind: Dodge, Params: Params{Preserve: "single"}}, in)
	require.NoError(t, err)
	// The lone bar at b takes one of two slots.
	assert.InDelta(t, -0.225, out[2].XOffset, 1e-12)

	_, err = Apply(Config{Kind: Dodge, Params: Params{Preserve: "some"}}, in)
	assert.Error(t, err)
}

func TestDodge2(t *testing.T) {
	out, err := Apply(Config{Kind: Dodge2}, bars("a", 1, 2))
	require.NoError(t, err)
	assert.InDelta(t, -0.225, out[0].XOffset, 1e-12)
	assert.InDelta(t, 0.45*0.9, out[0].Width.(float64), 1e-12)
}

func TestJitter(t *testing.T) {
	var in []render.Record
	for i := 0; i < 50; i++ {
		in = append(in, render.Record{X: float64(i % 5), Y: float64(i), Row: i})
	}
	c := Config{Kind: Jitter, Params: Params{Seed: Int64(1), JitterWidth: Float64(0.2), JitterHeight: Float64(0)}}
	a, err := Apply(c, in)
	require.NoError(t, err)
	b, err := Apply(c, in)
	require.NoError(t, err)
	assert.Equal(t, a, b, "seeded jitter is deterministic")

	for i := range a {
		dx := a[i].X.(float64) - in[i].X.(float64)
		assert.LessOrEqual(t, dx, 0.2)
		assert.GreaterOrEqual(t, dx, -0.2)
		assert.Equal(t, in[i].Y, a[i].Y)
	}
}

func TestJitterDiscrete(t *testing.T) {
	c := Config{Kind: Jitter, Params: Params{Seed: Int64(7)}}
	out, err := Apply(c, bars("a", 1, 2, 3))
	require.NoError(t, err)
	for _, r := range out {
		assert.Equal(t, "a", r.X)
		assert.LessOrEqual(t, r.XOffset, 0.4)
		assert.GreaterOrEqual(t, r.XOffset, -0.4)
	}
}

func TestNudge(t *testing.T) {
	in := []render.Record{{X: 1.0, Y: 2.0}, {X: "a", Y: 2.0}}
	out, err := Apply(Config{Kind: Nudge}, in)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	out, err = Apply(Config{Kind: Nudge, Params: Params{NudgeX: 0.5, NudgeY: -1}}, in)
	require.NoError(t, err)
	assert.Equal(t, 1.5, out[0].X)
	assert.Equal(t, 1.0, out[0].Y)
	assert.Equal(t, "a", out[1].X)
	assert.Equal(t, 0.5, out[1].XOffset)
}

func TestMerge(t *testing.T) {
	layer := Params{Width: 0.5, NudgeX: 1}
	got := layer.Merge(Params{NudgeX: 2, Seed: Int64(3)})
	assert.Equal(t, 0.5, got.Width)
	assert.Equal(t, 2.0, got.NudgeX)
	assert.Equal(t, int64(3), *got.Seed)
}
