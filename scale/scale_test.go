// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-gglayer/ggerr"
)

func TestDegenerateDomain(t *testing.T) {
	s, err := Train([]any{5.0, 5.0, 5}, Config{Aesthetic: "x"})
	require.NoError(t, err)
	assert.Equal(t, Continuous, s.Kind)
	assert.Equal(t, [2]float64{5, 6}, s.Domain)
	y, ok := s.Map(5)
	assert.True(t, ok)
	assert.Equal(t, 0.0, y)
}

func TestContinuous(t *testing.T) {
	s, err := Train([]any{0.0, nil, 10.0, 2.5, math.NaN()}, Config{Aesthetic: "y"})
	require.NoError(t, err)
	assert.Equal(t, [2]float64{0, 10}, s.Domain)

	y, ok := s.Map(2.5)
	assert.True(t, ok)
	assert.Equal(t, 0.25, y)
	_, ok = s.Map(nil)
	assert.False(t, ok)
	_, ok = s.Map(11.0)
	assert.False(t, ok, "out of bounds values are censored")
	assert.Equal(t, 2.5, s.Invert(0.25))

	assert.Equal(t, []any{0.0, 5.0, 10.0}, s.Breaks)
	assert.Equal(t, []string{"0", "5", "10"}, s.Labels)
}

func TestContinuousOptions(t *testing.T) {
	s, err := Train([]any{0.0, 10.0}, Config{
		Limits: []any{nil, 20.0},
		Expand: Expand{Mult: 0.1},
		OOB:    "squish",
		Range:  [2]float64{0, 100},
	})
	require.NoError(t, err)
	assert.InDelta(t, -2, s.Domain[0], 1e-12)
	assert.InDelta(t, 22, s.Domain[1], 1e-12)
	y, ok := s.Map(50.0)
	assert.True(t, ok)
	assert.InDelta(t, 100, y, 1e-12)

	_, err = Train([]any{1.0}, Config{OOB: "wrap"})
	assert.True(t, ggerr.IsValidation(err))
	_, err = Train([]any{1.0}, Config{Limits: []any{1.0}})
	assert.True(t, ggerr.IsValidation(err))
	_, err = Train([]any{1.0}, Config{Limits: []any{"a", 2.0}})
	assert.True(t, ggerr.IsValidation(err))
}

func TestExplicitBreaks(t *testing.T) {
	s, err := Train([]any{0.0, 10.0}, Config{BreakValues: []float64{-1, 3, 7, 12}})
	require.NoError(t, err)
	assert.Equal(t, []any{3.0, 7.0}, s.Breaks)
}

func TestTransforms(t *testing.T) {
	s, err := Train([]any{1.0, 10.0, 1000.0, 0.0, -5.0}, Config{Transform: Log10})
	require.NoError(t, err)
	assert.InDelta(t, 0, s.Domain[0], 1e-12)
	assert.InDelta(t, 3, s.Domain[1], 1e-12)
	y, ok := s.Map(10.0)
	assert.True(t, ok)
	assert.InDelta(t, 1.0/3, y, 1e-12)
	_, ok = s.Map(0.0)
	assert.False(t, ok)
	assert.Contains(t, s.Breaks, 100.0)
	assert.InDelta(t, 100, s.Invert(2.0/3), 1e-9)

	s, err = Train([]any{0.0, 16.0}, Config{Transform: Sqrt})
	require.NoError(t, err)
	y, _ = s.Map(4.0)
	assert.InDelta(t, 0.5, y, 1e-12)

	s, err = Train([]any{0.0, 10.0}, Config{Transform: Reverse})
	require.NoError(t, err)
	y, _ = s.Map(0.0)
	assert.Equal(t, 1.0, y)

	double := Custom("double", func(x float64) float64 { return 2 * x }, func(y float64) float64 { return y / 2 })
	s, err = Train([]any{1.0, 3.0}, Config{Transform: double})
	require.NoError(t, err)
	assert.Equal(t, [2]float64{2, 6}, s.Domain)

	_, err = Train([]any{1.0}, Config{Transform: Transform{Name: "half", Forward: math.Sqrt}})
	assert.Error(t, err)

	for _, name := range []string{"", "log10", "sqrt", "reverse", "date"} {
		_, err := ParseTransform(name)
		assert.NoError(t, err, name)
	}
	_, err = ParseTransform("logit")
	assert.Error(t, err)
}

func TestDateLabels(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	s, err := Train([]any{day(1), day(31)}, Config{Transform: Date, BreakValues: []float64{float64(day(15).Unix())}})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-15"}, s.Labels)
}

func TestLabelStyles(t *testing.T) {
	got, err := formatLabels([]float64{1234567, 1234.5}, "comma", Identity)
	require.NoError(t, err)
	assert.Equal(t, []string{"1,234,567", "1,234.5"}, got)

	got, err = formatLabels([]float64{0.25, 0.5}, "percent", Identity)
	require.NoError(t, err)
	assert.Equal(t, []string{"25%", "50%"}, got)

	_, err = formatLabels(nil, "roman", Identity)
	assert.Error(t, err)
}

func TestDiscrete(t *testing.T) {
	s, err := Train([]any{"b", "a", nil, "b", "c"}, Config{Aesthetic: "x"})
	require.NoError(t, err)
	assert.Equal(t, Discrete, s.Kind)
	assert.Equal(t, []any{"b", "a", "c"}, s.Levels)
	assert.Equal(t, []string{"b", "a", "c"}, s.Labels)

	i, ok := s.Slot("a")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	y, ok := s.Map("a")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, y, 1e-12)
	y, _ = s.MapOffset("a", 0.25)
	assert.InDelta(t, 0.5+0.25/3, y, 1e-12)
	_, ok = s.Map("z")
	assert.False(t, ok)

	s, err = Train([]any{"b", "a"}, Config{Kind: Discrete, Limits: []any{"a", "b", "c"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, s.Levels)

	s, err = Train([]any{3, 1, 3}, Config{Kind: Discrete})
	require.NoError(t, err)
	assert.Equal(t, []any{3, 1}, s.Levels)
}
