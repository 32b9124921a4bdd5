// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	ggpalette "github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/palette/brewer"
)

// Default is the default categorical palette. Categorical cycles
// through it.
var Default = hexes(
	"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
	"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
)

// Categorical returns n colors from Default, repeating it as needed.
func Categorical(n int) []color.NRGBA {
	out := make([]color.NRGBA, n)
	for i := range out {
		out[i] = Default[i%len(Default)]
	}
	return out
}

// Brewer returns the n-color variant of the ColorBrewer palette name
// ("Blues", "Set1", "RdYlBu", ...). When n is outside the sizes the
// palette comes in, it returns the nearest variant, so the result may
// be longer or shorter than n.
func Brewer(name string, n int) ([]color.NRGBA, error) {
	variants, ok := brewer.ByName[name]
	if !ok {
		for k, v := range brewer.ByName {
			if strings.EqualFold(k, name) {
				variants, ok = v, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("unknown ColorBrewer palette %q", name)
	}
	var sizes []int
	for k := range variants {
		sizes = append(sizes, k)
	}
	sort.Ints(sizes)
	size := sizes[len(sizes)-1]
	for _, s := range sizes {
		if s >= n {
			size = s
			break
		}
	}
	var out []color.NRGBA
	for _, c := range variants[size] {
		out = append(out, color.NRGBAModel.Convert(c).(color.NRGBA))
	}
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}

// BrewerGradient returns the largest variant of a ColorBrewer palette
// as a continuous gradient.
func BrewerGradient(name string) (Gradient, error) {
	cs, err := Brewer(name, math.MaxInt)
	if err != nil {
		return Gradient{}, err
	}
	return Gradient{Colors: cs}, nil
}

// BrewerNames returns the names of all ColorBrewer palettes, sorted.
func BrewerNames() []string {
	var names []string
	for k := range brewer.ByName {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// viridisSteps is the resolution at which the go-gg viridis map is
// sampled into a lookup table.
const viridisSteps = 64

// viridisMaps holds the viridis family, by option letter. "D" (viridis
// itself) is sampled from go-gg.
var viridisMaps = map[string]LUT{
	"A": hexes("#000004", "#1D1147", "#51127C", "#822681", "#B63679", "#E65164", "#FB8861", "#FEC287", "#FCFDBF"),
	"B": hexes("#000004", "#1F0C48", "#550F6D", "#88226A", "#BA3655", "#E35932", "#F98C0A", "#F9C932", "#FCFFA4"),
	"C": hexes("#0D0887", "#4C02A1", "#7E03A8", "#A92395", "#CC4678", "#E56B5D", "#F89441", "#FDC328", "#F0F921"),
	"D": sampleContinuous(ggpalette.Viridis, viridisSteps),
	"E": hexes("#00204D", "#00336F", "#39486B", "#575C6D", "#707173", "#8A8779", "#A69D75", "#C8B866", "#FFEA46"),
	"F": hexes("#03051A", "#2B1C3F", "#5B1E51", "#8B2058", "#C21D52", "#EA4E3C", "#F58860", "#F6BC9E", "#FAEBDD"),
	"G": hexes("#0B0405", "#2B1C35", "#3E356B", "#3B5698", "#357BA2", "#3AA0AB", "#60C6AC", "#ABE1BD", "#DEF5E5"),
	"H": hexes("#30123B", "#4662D7", "#36AAF9", "#1AE4B6", "#72FE5E", "#C7EF34", "#FABA39", "#F66B19", "#7A0403"),
}

var viridisOptions = map[string]string{
	"magma":   "A",
	"inferno": "B",
	"plasma":  "C",
	"viridis": "D",
	"cividis": "E",
	"rocket":  "F",
	"mako":    "G",
	"turbo":   "H",
}

func sampleContinuous(p ggpalette.Continuous, n int) LUT {
	out := make(LUT, n)
	for i := range out {
		out[i] = color.NRGBAModel.Convert(p.Map(float64(i) / float64(n-1))).(color.NRGBA)
	}
	return out
}

// ViridisMap returns the viridis-family map for option, which is a
// letter "A" through "H" or a name such as "magma". The empty option
// is viridis.
func ViridisMap(option string) (LUT, error) {
	key := strings.ToUpper(option)
	if key == "" {
		key = "D"
	}
	if k, ok := viridisOptions[strings.ToLower(option)]; ok {
		key = k
	}
	lut, ok := viridisMaps[key]
	if !ok {
		return nil, fmt.Errorf("unknown viridis option %q", option)
	}
	return lut, nil
}

// ViridisOptions configures Viridis. The zero value samples the whole
// map in ascending order, fully opaque.
type ViridisOptions struct {
	Option     string
	Begin, End *float64
	Direction  int
	Alpha      *float64
}

// Viridis returns n colors evenly spaced over [Begin, End] of a
// viridis-family map.
func Viridis(n int, o ViridisOptions) ([]color.NRGBA, error) {
	lut, err := ViridisMap(o.Option)
	if err != nil {
		return nil, err
	}
	begin, end := 0.0, 1.0
	if o.Begin != nil {
		begin = *o.Begin
	}
	if o.End != nil {
		end = *o.End
	}
	if begin < 0 || end > 1 || begin > end {
		return nil, fmt.Errorf("viridis range [%v, %v] must be within [0, 1]", begin, end)
	}
	if o.Direction == -1 {
		begin, end = end, begin
	}
	out := make([]color.NRGBA, n)
	for i := range out {
		t := begin
		if n > 1 {
			t = begin + (end-begin)*float64(i)/float64(n-1)
		}
		out[i] = lut.At(t)
		if o.Alpha != nil {
			out[i] = WithAlpha(out[i], *o.Alpha)
		}
	}
	return out, nil
}

// Grey returns n greys from start to end (0 is black, 1 is white),
// spaced evenly in gamma-2.2 intensity.
func Grey(n int, start, end float64) []color.NRGBA {
	const gamma = 2.2
	a, b := math.Pow(start, gamma), math.Pow(end, gamma)
	out := make([]color.NRGBA, n)
	for i := range out {
		t := a
		if n > 1 {
			t = a + (b-a)*float64(i)/float64(n-1)
		}
		v := uint8(math.Round(math.Pow(t, 1/gamma) * 255))
		out[i] = color.NRGBA{v, v, v, 0xff}
	}
	return out
}

// Float64 returns a pointer to v, for the optional fields of
// ViridisOptions.
func Float64(v float64) *float64 { return &v }
