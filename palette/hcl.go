// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
	"image/color"
	"math"
)

// D65 reference white.
const (
	whiteX = 95.047
	whiteY = 100.0
	whiteZ = 108.883
)

// HCL converts a polar CIE-LUV color with hue h (degrees), chroma c,
// and luminance l to sRGB. Out-of-gamut components are clamped.
func HCL(h, c, l float64) color.NRGBA {
	if l <= 0 {
		return color.NRGBA{0, 0, 0, 0xff}
	}
	hr := h * math.Pi / 180
	u, v := c*math.Cos(hr), c*math.Sin(hr)

	var y float64
	if l > 8 {
		y = whiteY * math.Pow((l+16)/116, 3)
	} else {
		y = whiteY * l / 903.3
	}
	t := whiteX + 15*whiteY + 3*whiteZ
	un, vn := 4*whiteX/t, 9*whiteY/t
	up, vp := u/(13*l)+un, v/(13*l)+vn
	x := 9 * y * up / (4 * vp)
	z := -x/3 - 5*y + 3*y/vp

	x, y, z = x/100, y/100, z/100
	r := 3.240479*x - 1.537150*y - 0.498535*z
	g := -0.969256*x + 1.875992*y + 0.041556*z
	b := 0.055648*x - 0.204043*y + 1.057311*z
	return color.NRGBA{gammaEncode(r), gammaEncode(g), gammaEncode(b), 0xff}
}

// gammaEncode maps linear intensity v to an 8-bit sRGB component.
func gammaEncode(v float64) uint8 {
	if v <= 0.0031308 {
		v *= 12.92
	} else {
		v = 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// HueOptions configures Hue. The zero value gives the usual hue wheel:
// hues from 15° to 375°, chroma 100, luminance 65.
type HueOptions struct {
	HueMin, HueMax float64
	Chroma         float64
	Luminance      float64

	// Direction is 1 (the default) to go around the wheel
	// counter-clockwise, or -1 to go clockwise.
	Direction int
}

// Hue returns n colors evenly spaced around the HCL hue wheel at fixed
// chroma and luminance. When the hue range covers a full turn, the end
// hue is dropped so the first and last colors differ.
func Hue(n int, o HueOptions) []color.NRGBA {
	if n <= 0 {
		return nil
	}
	h0, h1 := o.HueMin, o.HueMax
	if h0 == 0 && h1 == 0 {
		h0, h1 = 15, 375
	}
	c, l := o.Chroma, o.Luminance
	if c == 0 {
		c = 100
	}
	if l == 0 {
		l = 65
	}
	if math.Mod(math.Abs(h1-h0), 360) < 1 {
		h1 -= 360 / float64(n)
	}
	out := make([]color.NRGBA, n)
	for i := range out {
		h := h0
		if n > 1 {
			h = h0 + (h1-h0)*float64(i)/float64(n-1)
		}
		out[i] = HCL(math.Mod(h, 360), c, l)
	}
	if o.Direction == -1 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
