// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package palette parses, formats, and interpolates colors, and
// provides the built-in color palettes: the default categorical
// palette, HCL hue wheels, ColorBrewer, the viridis family, and grey
// ramps.
//
// Colors are non-premultiplied sRGB (color.NRGBA). Interpolation is
// piecewise linear in sRGB component space, so the midpoint of black
// and white is #808080.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	ggpalette "github.com/aclements/go-gg/palette"
	"golang.org/x/image/colornames"
)

// Parse parses a color written as "#RGB", "#RRGGBB", "#RRGGBBAA", an
// SVG color name ("steelblue"), an R grey level ("grey40", "gray90"),
// or "transparent".
func Parse(s string) (color.NRGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(name, "#") {
		return parseHex(name[1:], s)
	}
	if name == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return color.NRGBA{c.R, c.G, c.B, c.A}, nil
	}
	for _, p := range []string{"grey", "gray"} {
		if rest, ok := strings.CutPrefix(name, p); ok && rest != "" {
			k, err := strconv.Atoi(rest)
			if err == nil && k >= 0 && k <= 100 {
				v := uint8(math.Round(float64(k) * 255 / 100))
				return color.NRGBA{v, v, v, 0xff}, nil
			}
		}
	}
	return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
}

// MustParse is like Parse but panics on error. It is meant for
// package-level tables.
func MustParse(s string) color.NRGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(h, orig string) (color.NRGBA, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("malformed hex color %q", orig)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("malformed hex color %q", orig)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// LooksLikeColor reports whether s parses as a color literal.
func LooksLikeColor(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Hex formats c as "#RRGGBB", or "#RRGGBBAA" if c is not opaque.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", n.R, n.G, n.B, n.A)
}

// Lerp interpolates linearly between a and b. t is clamped to [0, 1].
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// Gradient is a continuous palette that interpolates linearly between
// Colors. It implements go-gg's palette.Continuous.
type Gradient struct {
	Colors []color.NRGBA

	// Stops are the positions of Colors in [0, 1], ascending. If
	// nil, Colors are evenly spaced.
	Stops []float64
}

var _ ggpalette.Continuous = Gradient{}

// NewGradient returns a gradient through colors, which may be written
// in any form Parse accepts. stops may be nil.
func NewGradient(colors []string, stops []float64) (Gradient, error) {
	if len(colors) == 0 {
		return Gradient{}, fmt.Errorf("gradient needs at least one color")
	}
	if stops != nil {
		if len(stops) != len(colors) {
			return Gradient{}, fmt.Errorf("gradient has %d colors but %d stops", len(colors), len(stops))
		}
		if !sort.Float64sAreSorted(stops) {
			return Gradient{}, fmt.Errorf("gradient stops must be ascending")
		}
	}
	g := Gradient{Stops: stops}
	for _, s := range colors {
		c, err := Parse(s)
		if err != nil {
			return Gradient{}, err
		}
		g.Colors = append(g.Colors, c)
	}
	return g, nil
}

// Map returns the color at x in [0, 1]. x outside [0, 1] maps to the
// end colors.
func (g Gradient) Map(x float64) color.Color {
	return g.At(x)
}

// At is Map with a concrete result type.
func (g Gradient) At(x float64) color.NRGBA {
	n := len(g.Colors)
	switch {
	case n == 0:
		return color.NRGBA{}
	case n == 1 || math.IsNaN(x):
		return g.Colors[0]
	}
	if g.Stops == nil {
		return LUT(g.Colors).At(x)
	}
	if x <= g.Stops[0] {
		return g.Colors[0]
	}
	if x >= g.Stops[n-1] {
		return g.Colors[n-1]
	}
	i := sort.SearchFloat64s(g.Stops, x)
	if g.Stops[i] == x {
		return g.Colors[i]
	}
	lo, hi := g.Stops[i-1], g.Stops[i]
	return Lerp(g.Colors[i-1], g.Colors[i], (x-lo)/(hi-lo))
}

// Reverse returns g mirrored end to end.
func (g Gradient) Reverse() Gradient {
	n := len(g.Colors)
	out := Gradient{Colors: make([]color.NRGBA, n)}
	for i, c := range g.Colors {
		out.Colors[n-1-i] = c
	}
	if g.Stops != nil {
		out.Stops = make([]float64, n)
		for i, s := range g.Stops {
			out.Stops[n-1-i] = 1 - s
		}
	}
	return out
}

// A LUT is a lookup table of evenly spaced colors. Lookups interpolate
// between the two entries bracketing x·(len-1).
type LUT []color.NRGBA

func (l LUT) Map(x float64) color.Color {
	return l.At(x)
}

// At is Map with a concrete result type.
func (l LUT) At(x float64) color.NRGBA {
	if len(l) == 0 {
		return color.NRGBA{}
	}
	if math.IsNaN(x) {
		return l[0]
	}
	pos := math.Max(0, math.Min(1, x)) * float64(len(l)-1)
	lo := int(math.Floor(pos))
	hi := min(int(math.Ceil(pos)), len(l)-1)
	if lo == hi {
		return l[lo]
	}
	return Lerp(l[lo], l[hi], pos-float64(lo))
}

// WithAlpha returns c with its alpha set to a in [0, 1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
	return c
}

// hexes parses a table of colors.
func hexes(ss ...string) []color.NRGBA {
	out := make([]color.NRGBA, len(ss))
	for i, s := range ss {
		out[i] = MustParse(s)
	}
	return out
}
