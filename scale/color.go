// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/palette"
	"github.com/aclements/go-gglayer/render"
)

// Color scale types.
const (
	ColorDefault   = "default"
	ColorManual    = "manual"
	ColorBrewer    = "brewer"
	ColorGradient  = "gradient"
	ColorGradient2 = "gradient2"
	ColorGradientN = "gradientn"
	ColorViridisD  = "viridis_d"
	ColorViridisC  = "viridis_c"
	ColorIdentity  = "identity"
	ColorDistiller = "distiller"
	ColorFermenter = "fermenter"
	ColorGrey      = "grey"
	ColorHue       = "hue"
	ColorSteps     = "steps"
	ColorSteps2    = "steps2"
	ColorStepsN    = "stepsn"
)

// DefaultNA is the color of values a color scale cannot place.
const DefaultNA = "#7F7F7F"

// ColorConfig describes a color or fill scale. Fields that do not
// apply to Type are ignored. The zero value is the default categorical
// palette.
type ColorConfig struct {
	Type string

	// Low, Mid, and High are the gradient end and middle colors.
	// Midpoint is the data value Mid sits at (default 0).
	Low, Mid, High string
	Midpoint       *float64

	// Colors lists colors for manual and the multi-stop types, and
	// Values their positions in [0, 1]. Named maps level keys to
	// colors for manual scales.
	Colors []string
	Values []float64
	Named  map[string]string

	// Palette and Direction select a ColorBrewer palette. Direction
	// -1 reverses it.
	Palette   string
	Direction int

	// Option, Begin, End, and Alpha configure viridis scales. Begin
	// and End also bound grey ramps.
	Option     string
	Begin, End *float64
	Alpha      *float64

	Hue palette.HueOptions

	// Bins is the number of color bands of the binned types
	// (default 5).
	Bins int

	// Limits fixes the domain of continuous types.
	Limits []float64

	NAValue string
}

// ColorScale maps aesthetic values to colors. It is immutable once
// trained.
type ColorScale struct {
	Type string

	// Continuous reports whether the scale maps numbers through a
	// color ramp, rather than levels to palette entries.
	Continuous bool

	// Domain is the continuous domain.
	Domain [2]float64

	// Levels are the discrete levels in order of first appearance.
	Levels []any

	na       string
	byLevel  map[string]string
	ramp     func(t float64) color.NRGBA
	midpoint *float64
	bands    []color.NRGBA
	identity bool
}

// TrainColor trains a color scale on values.
func TrainColor(values []any, cfg ColorConfig) (*ColorScale, error) {
	const op = "color scale"
	typ := strings.ToLower(cfg.Type)
	if typ == "" {
		typ = ColorDefault
	}
	s := &ColorScale{Type: typ, na: DefaultNA}
	if cfg.NAValue != "" {
		c, err := palette.Parse(cfg.NAValue)
		if err != nil {
			return nil, ggerr.Validation(op, err)
		}
		s.na = palette.Hex(c)
	}

	var err error
	switch typ {
	case ColorDefault, ColorManual, ColorBrewer, ColorViridisD, ColorGrey, ColorHue:
		err = s.trainDiscrete(values, cfg)
	case ColorIdentity:
		s.identity = true
	case ColorGradient, ColorGradient2, ColorGradientN, ColorDistiller, ColorViridisC,
		ColorSteps, ColorSteps2, ColorStepsN, ColorFermenter:
		s.Continuous = true
		err = s.trainContinuous(values, cfg)
	default:
		err = fmt.Errorf("unknown color scale type %q", cfg.Type)
	}
	if err != nil {
		return nil, ggerr.Validation(op, err)
	}
	return s, nil
}

func (s *ColorScale) trainDiscrete(values []any, cfg ColorConfig) error {
	seen := make(map[string]bool)
	var keys []string
	for _, v := range values {
		if render.IsNull(v) {
			continue
		}
		k := render.Key(v)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
			s.Levels = append(s.Levels, v)
		}
	}
	n := len(keys)

	var pal []color.NRGBA
	switch s.Type {
	case ColorDefault:
		pal = palette.Categorical(n)
	case ColorManual:
		switch {
		case cfg.Named != nil:
			s.byLevel = make(map[string]string)
			for _, k := range keys {
				if c, ok := cfg.Named[k]; ok {
					p, err := palette.Parse(c)
					if err != nil {
						return err
					}
					s.byLevel[k] = palette.Hex(p)
				}
			}
			return nil
		case cfg.Colors != nil:
			if len(cfg.Colors) < n {
				return fmt.Errorf("manual scale has %d colors for %d levels", len(cfg.Colors), n)
			}
			for _, c := range cfg.Colors {
				p, err := palette.Parse(c)
				if err != nil {
					return err
				}
				pal = append(pal, p)
			}
		default:
			pal = palette.Hue(n, palette.HueOptions{})
		}
	case ColorBrewer:
		name := cfg.Palette
		if name == "" {
			name = "Set1"
		}
		var err error
		if pal, err = palette.Brewer(name, n); err != nil {
			return err
		}
		if cfg.Direction == -1 {
			pal = reversed(pal)
		}
	case ColorViridisD:
		var err error
		pal, err = palette.Viridis(n, palette.ViridisOptions{
			Option: cfg.Option, Begin: cfg.Begin, End: cfg.End,
			Direction: cfg.Direction, Alpha: cfg.Alpha,
		})
		if err != nil {
			return err
		}
	case ColorGrey:
		begin, end := 0.2, 0.8
		if cfg.Begin != nil {
			begin = *cfg.Begin
		}
		if cfg.End != nil {
			end = *cfg.End
		}
		if begin < 0 || end > 1 {
			return fmt.Errorf("grey range [%v, %v] must be within [0, 1]", begin, end)
		}
		pal = palette.Grey(n, begin, end)
	case ColorHue:
		pal = palette.Hue(n, cfg.Hue)
	}

	// Levels beyond the palette have no color.
	s.byLevel = make(map[string]string)
	for i, k := range keys {
		if i < len(pal) {
			s.byLevel[k] = palette.Hex(pal[i])
		}
	}
	return nil
}

func (s *ColorScale) trainContinuous(values []any, cfg ColorConfig) error {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if x, ok := render.Float(v); ok && !math.IsInf(x, 0) {
			lo, hi = math.Min(lo, x), math.Max(hi, x)
		}
	}
	if lo > hi {
		lo, hi = 0, 1
	}
	if cfg.Limits != nil {
		if len(cfg.Limits) != 2 || cfg.Limits[0] > cfg.Limits[1] {
			return fmt.Errorf("color limits must be [lo, hi], got %v", cfg.Limits)
		}
		lo, hi = cfg.Limits[0], cfg.Limits[1]
	}
	if lo == hi {
		hi = lo + 1
	}
	s.Domain = [2]float64{lo, hi}

	parse := func(c, def string) (color.NRGBA, error) {
		if c == "" {
			c = def
		}
		return palette.Parse(c)
	}
	twoStop := func(low, high string) (palette.Gradient, error) {
		a, err := parse(cfg.Low, low)
		if err != nil {
			return palette.Gradient{}, err
		}
		b, err := parse(cfg.High, high)
		if err != nil {
			return palette.Gradient{}, err
		}
		return palette.Gradient{Colors: []color.NRGBA{a, b}}, nil
	}
	threeStop := func() (palette.Gradient, error) {
		a, err := parse(cfg.Low, "#832424")
		if err != nil {
			return palette.Gradient{}, err
		}
		m, err := parse(cfg.Mid, "white")
		if err != nil {
			return palette.Gradient{}, err
		}
		b, err := parse(cfg.High, "#3A3A98")
		if err != nil {
			return palette.Gradient{}, err
		}
		mid := 0.0
		if cfg.Midpoint != nil {
			mid = *cfg.Midpoint
		}
		s.midpoint = &mid
		return palette.Gradient{Colors: []color.NRGBA{a, m, b}}, nil
	}
	multiStop := func() (palette.Gradient, error) {
		if len(cfg.Colors) == 0 {
			return palette.Gradient{}, fmt.Errorf("%s scale needs colors", s.Type)
		}
		return palette.NewGradient(cfg.Colors, cfg.Values)
	}

	var g palette.Gradient
	var err error
	switch s.Type {
	case ColorGradient, ColorSteps:
		if cfg.Mid != "" {
			g, err = threeStop()
		} else {
			g, err = twoStop("#132B43", "#56B1F7")
		}
	case ColorGradient2, ColorSteps2:
		g, err = threeStop()
	case ColorGradientN, ColorStepsN:
		g, err = multiStop()
	case ColorDistiller, ColorFermenter:
		name := cfg.Palette
		if name == "" {
			name = "Blues"
		}
		g, err = palette.BrewerGradient(name)
		if cfg.Direction != 1 {
			g = g.Reverse()
		}
	case ColorViridisC:
		var lut palette.LUT
		if lut, err = palette.ViridisMap(cfg.Option); err != nil {
			return err
		}
		begin, end := 0.0, 1.0
		if cfg.Begin != nil {
			begin = *cfg.Begin
		}
		if cfg.End != nil {
			end = *cfg.End
		}
		if cfg.Direction == -1 {
			begin, end = end, begin
		}
		s.ramp = func(t float64) color.NRGBA {
			c := lut.At(begin + t*(end-begin))
			if cfg.Alpha != nil {
				c = palette.WithAlpha(c, *cfg.Alpha)
			}
			return c
		}
		return nil
	}
	if err != nil {
		return err
	}
	s.ramp = g.At

	switch s.Type {
	case ColorSteps, ColorSteps2, ColorStepsN, ColorFermenter:
		n := cfg.Bins
		if n < 0 {
			return fmt.Errorf("bins must be positive, got %d", n)
		}
		if n == 0 {
			n = 5
		}
		if s.Type == ColorFermenter {
			// Fermenter bands are the palette's own colors.
			name := cfg.Palette
			if name == "" {
				name = "Blues"
			}
			if s.bands, err = palette.Brewer(name, n); err != nil {
				return err
			}
			if cfg.Direction != 1 {
				s.bands = reversed(s.bands)
			}
			break
		}
		s.bands = make([]color.NRGBA, n)
		for i := range s.bands {
			t := 0.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			s.bands[i] = s.ramp(t)
		}
	}
	return nil
}

// position returns where x falls on the ramp, in [0, 1].
func (s *ColorScale) position(x float64) (float64, bool) {
	lo, hi := s.Domain[0], s.Domain[1]
	if x < lo || x > hi || math.IsInf(x, 0) {
		return 0, false
	}
	if s.midpoint != nil {
		m := *s.midpoint
		r := math.Max(math.Abs(lo-m), math.Abs(hi-m))
		if r == 0 {
			return 0.5, true
		}
		return 0.5 + (x-m)/(2*r), true
	}
	return (x - lo) / (hi - lo), true
}

// ColorFor returns the color of v as "#RRGGBB" (or "#RRGGBBAA" if
// translucent). Nulls, values the scale was not trained on, and
// non-numeric or out-of-domain values on continuous scales get the NA
// color.
func (s *ColorScale) ColorFor(v any) string {
	if render.IsNull(v) {
		return s.na
	}
	switch {
	case s.identity:
		str, ok := v.(string)
		if !ok {
			return s.na
		}
		c, err := palette.Parse(str)
		if err != nil {
			return s.na
		}
		return palette.Hex(c)

	case s.Continuous:
		x, ok := render.Float(v)
		if !ok {
			return s.na
		}
		t, ok := s.position(x)
		if !ok {
			return s.na
		}
		if s.bands != nil {
			n := len(s.bands)
			i := min(int(math.Floor(t*float64(n))), n-1)
			return palette.Hex(s.bands[i])
		}
		return palette.Hex(s.ramp(t))
	}

	if c, ok := s.byLevel[render.Key(v)]; ok {
		return c
	}
	return s.na
}

// NA returns the scale's NA color.
func (s *ColorScale) NA() string { return s.na }

func reversed(cs []color.NRGBA) []color.NRGBA {
	out := make([]color.NRGBA, len(cs))
	for i, c := range cs {
		out[len(cs)-1-i] = c
	}
	return out
}
