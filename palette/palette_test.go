// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for in, want := range map[string]color.NRGBA{
		"#000":        {0, 0, 0, 255},
		"#FF8000":     {255, 128, 0, 255},
		"#ff800080":   {255, 128, 0, 128},
		"red":         {255, 0, 0, 255},
		"SteelBlue":   {70, 130, 180, 255},
		"grey100":     {255, 255, 255, 255},
		"gray0":       {0, 0, 0, 255},
		"transparent": {},
	} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"#12", "#GGGGGG", "nocolor", "grey101", ""} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
	assert.True(t, LooksLikeColor("#abc"))
	assert.False(t, LooksLikeColor("price"))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#FF8000", Hex(color.NRGBA{255, 128, 0, 255}))
	assert.Equal(t, "#FF800080", Hex(color.NRGBA{255, 128, 0, 128}))
	assert.Equal(t, "#0000FF", Hex(color.RGBA{0, 0, 255, 255}))
}

func TestLerp(t *testing.T) {
	black, white := MustParse("#000000"), MustParse("#FFFFFF")
	assert.Equal(t, "#808080", Hex(Lerp(black, white, 0.5)))
	assert.Equal(t, black, Lerp(black, white, -1))
	assert.Equal(t, white, Lerp(black, white, 2))
}

func TestGradient(t *testing.T) {
	g, err := NewGradient([]string{"#000000", "#FF0000", "#FFFFFF"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "#000000", Hex(g.Map(0)))
	assert.Equal(t, "#FF0000", Hex(g.Map(0.5)))
	assert.Equal(t, "#800000", Hex(g.Map(0.25)))
	assert.Equal(t, "#FFFFFF", Hex(g.Map(1)))
	assert.Equal(t, "#FFFFFF", Hex(g.Map(7)))

	g, err = NewGradient([]string{"#000000", "#FF0000", "#FFFFFF"}, []float64{0, 0.8, 1})
	require.NoError(t, err)
	assert.Equal(t, "#800000", Hex(g.Map(0.4)))
	assert.Equal(t, "#FF0000", Hex(g.Map(0.8)))
	assert.Equal(t, "#FF8080", Hex(g.Map(0.9)))

	r := g.Reverse()
	assert.Equal(t, "#FFFFFF", Hex(r.Map(0)))
	assert.Equal(t, "#FF0000", Hex(r.Map(0.2)))

	_, err = NewGradient([]string{"#000", "#fff"}, []float64{1, 0})
	assert.Error(t, err)
	_, err = NewGradient([]string{"#000", "#fff"}, []float64{0})
	assert.Error(t, err)
}

func TestLUT(t *testing.T) {
	l := LUT(hexes("#000000", "#646464", "#C8C8C8"))
	assert.Equal(t, "#323232", Hex(l.Map(0.25)))
	assert.Equal(t, "#646464", Hex(l.Map(0.5)))
	assert.Equal(t, "#C8C8C8", Hex(l.Map(1.5)))
	assert.Equal(t, "#000000", Hex(l.Map(-1)))
}

func TestHCL(t *testing.T) {
	assert.Equal(t, "#F8766D", Hex(HCL(15, 100, 65)))

	hexOf := func(cs []color.NRGBA) []string {
		var out []string
		for _, c := range cs {
			out = append(out, Hex(c))
		}
		return out
	}
	assert.Equal(t, []string{"#F8766D", "#00BFC4"}, hexOf(Hue(2, HueOptions{})))
	assert.Equal(t, []string{"#F8766D", "#00BA38", "#619CFF"}, hexOf(Hue(3, HueOptions{})))
	assert.Equal(t, []string{"#619CFF", "#00BA38", "#F8766D"}, hexOf(Hue(3, HueOptions{Direction: -1})))
	assert.Len(t, Hue(0, HueOptions{}), 0)
}

func TestCategorical(t *testing.T) {
	cs := Categorical(12)
	assert.Len(t, cs, 12)
	assert.Equal(t, cs[0], cs[10])
	assert.Equal(t, "#1F77B4", Hex(cs[0]))
}

func TestViridis(t *testing.T) {
	cs, err := Viridis(3, ViridisOptions{Option: "magma"})
	require.NoError(t, err)
	assert.Equal(t, "#000004", Hex(cs[0]))
	assert.Equal(t, "#FCFDBF", Hex(cs[2]))

	cs, err = Viridis(2, ViridisOptions{Option: "A", Direction: -1})
	require.NoError(t, err)
	assert.Equal(t, "#FCFDBF", Hex(cs[0]))

	cs, err = Viridis(2, ViridisOptions{Option: "E", Alpha: Float64(0.5)})
	require.NoError(t, err)
	assert.Equal(t, uint8(128), cs[0].A)

	// Viridis proper runs from dark purple to yellow.
	cs, err = Viridis(2, ViridisOptions{})
	require.NoError(t, err)
	assert.Less(t, int(cs[0].G), 40)
	assert.Greater(t, int(cs[1].R), 200)
	assert.Greater(t, int(cs[1].G), 200)

	for opt := range viridisOptions {
		_, err := ViridisMap(opt)
		assert.NoError(t, err, opt)
	}
	_, err = ViridisMap("Z")
	assert.Error(t, err)
	_, err = Viridis(3, ViridisOptions{Begin: Float64(0.8), End: Float64(0.2)})
	assert.Error(t, err)
}

func TestGrey(t *testing.T) {
	var got []string
	for _, c := range Grey(3, 0.2, 0.8) {
		got = append(got, Hex(c))
	}
	assert.Equal(t, []string{"#333333", "#989898", "#CCCCCC"}, got)
}

func TestBrewer(t *testing.T) {
	cs, err := Brewer("Set1", 3)
	require.NoError(t, err)
	assert.Len(t, cs, 3)
	assert.Equal(t, "#E41A1C", Hex(cs[0]))

	// Too few levels uses the smallest variant, truncated.
	cs, err = Brewer("Blues", 2)
	require.NoError(t, err)
	assert.Len(t, cs, 2)

	cs, err = Brewer("blues", 100)
	require.NoError(t, err)
	assert.Len(t, cs, 9)

	_, err = Brewer("NoSuch", 3)
	assert.Error(t, err)
	assert.Contains(t, BrewerNames(), "RdYlBu")
}
