// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale trains scales: domain-to-range mappings for one
// aesthetic, shared by every layer that uses it.
//
// A scale is trained once per chart from the union of the aesthetic's
// values across layers and is immutable afterwards. Continuous scales
// map numbers (after an optional Transform) linearly onto an output
// range; discrete scales map each distinct value, in order of first
// appearance, to a slot. Color and fill use ColorScale instead.
package scale

import (
	"fmt"
	"math"

	"github.com/aclements/go-gglayer/diag"
	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/render"
)

// Kind is the kind of a scale.
type Kind int

const (
	// Auto picks Continuous if every non-null value is numeric,
	// and Discrete otherwise.
	Auto Kind = iota
	Continuous
	Discrete
)

func (k Kind) String() string {
	switch k {
	case Auto:
		return "auto"
	case Continuous:
		return "continuous"
	case Discrete:
		return "discrete"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Expand pads a continuous domain: each end moves outward by
// Mult×width + Add.
type Expand struct {
	Mult, Add float64
}

// Config describes a scale before training. The zero Config is an
// automatic, untransformed scale onto [0, 1] with about 5 breaks.
type Config struct {
	Aesthetic string
	Kind      Kind

	// Transform applies to continuous scales. The zero value is
	// Identity.
	Transform Transform

	// Limits fixes the domain. For continuous scales it is [lo, hi]
	// in data space; a nil end is taken from the data. For discrete
	// scales it is the ordered list of levels.
	Limits []any

	Expand Expand

	// Breaks is the maximum number of breaks to generate (default
	// 5). BreakValues, if non-nil, gives them explicitly.
	Breaks      int
	BreakValues []float64

	// Labels selects the label style for continuous breaks: "" for
	// plain numbers, "comma" for digit grouping, or "percent".
	Labels string

	// OOB selects what happens to continuous values outside the
	// domain: "censor" (the default) maps them to nothing, "squish"
	// clamps them to the nearest end.
	OOB string

	// Range is the output range. The zero value is [0, 1].
	Range [2]float64
}

// Trained is a trained scale.
type Trained struct {
	Aesthetic string
	Kind      Kind
	Transform Transform

	// Domain is the continuous domain, in transformed space, after
	// widening and expansion.
	Domain [2]float64

	// Levels are the discrete levels in slot order.
	Levels []any

	Range [2]float64

	// Breaks are in data space. Labels label them.
	Breaks []any
	Labels []string

	squish bool
	slot   map[string]int
}

// Train trains a scale on values, which hold every layer's values for
// the aesthetic.
func Train(values []any, cfg Config) (*Trained, error) {
	op := "scale " + cfg.Aesthetic
	s := &Trained{
		Aesthetic: cfg.Aesthetic,
		Kind:      cfg.Kind,
		Transform: cfg.Transform,
		Range:     cfg.Range,
	}
	if s.Range == [2]float64{} {
		s.Range = [2]float64{0, 1}
	}
	if s.Transform.isZero() {
		s.Transform = Identity
	}
	if err := s.Transform.valid(); err != nil {
		return nil, ggerr.Validation(op, err)
	}
	if s.Kind == Auto {
		s.Kind = inferKind(values)
	}

	switch s.Kind {
	case Continuous:
		switch cfg.OOB {
		case "", "censor":
		case "squish", "clamp":
			s.squish = true
		default:
			return nil, ggerr.Validationf(op, "unknown out-of-bounds policy %q", cfg.OOB)
		}
		if err := s.trainContinuous(values, cfg); err != nil {
			return nil, ggerr.Validation(op, err)
		}
	case Discrete:
		s.trainDiscrete(values, cfg)
	default:
		return nil, ggerr.Validationf(op, "unknown scale kind %v", s.Kind)
	}
	return s, nil
}

// inferKind reports Continuous if values has no non-numeric, non-null
// entries.
func inferKind(values []any) Kind {
	for _, v := range values {
		if !render.IsNull(v) && !render.IsNumeric(v) {
			return Discrete
		}
	}
	return Continuous
}

func (s *Trained) trainContinuous(values []any, cfg Config) error {
	lo, hi := math.Inf(1), math.Inf(-1)
	dropped := 0
	for _, v := range values {
		x, ok := render.Float(v)
		if !ok {
			if !render.IsNull(v) {
				dropped++
			}
			continue
		}
		t := s.Transform.Forward(x)
		if math.IsNaN(t) || math.IsInf(t, 0) {
			dropped++
			continue
		}
		lo, hi = math.Min(lo, t), math.Max(hi, t)
	}
	if dropped > 0 {
		diag.Logger().Warn("scale dropped values it cannot place", "aesthetic", s.Aesthetic, "dropped", dropped, "transform", s.Transform.Name)
	}
	if lo > hi {
		lo, hi = 0, 1
	}

	if cfg.Limits != nil {
		if len(cfg.Limits) != 2 {
			return fmt.Errorf("continuous limits need two values, got %d", len(cfg.Limits))
		}
		fix := func(v any, dst *float64) error {
			if v == nil {
				return nil
			}
			x, ok := render.Float(v)
			if !ok {
				return fmt.Errorf("limit %v is not numeric", v)
			}
			*dst = s.Transform.Forward(x)
			return nil
		}
		if err := fix(cfg.Limits[0], &lo); err != nil {
			return err
		}
		if err := fix(cfg.Limits[1], &hi); err != nil {
			return err
		}
		if lo > hi {
			lo, hi = hi, lo
		}
	}

	if lo == hi {
		hi = lo + 1
	}
	w := hi - lo
	lo -= w*cfg.Expand.Mult + cfg.Expand.Add
	hi += w*cfg.Expand.Mult + cfg.Expand.Add
	s.Domain = [2]float64{lo, hi}

	breaks, err := s.continuousBreaks(cfg)
	if err != nil {
		return err
	}
	for _, b := range breaks {
		s.Breaks = append(s.Breaks, b)
	}
	s.Labels, err = formatLabels(breaks, cfg.Labels, s.Transform)
	return err
}

func (s *Trained) trainDiscrete(values []any, cfg Config) {
	s.slot = make(map[string]int)
	add := func(v any) {
		if render.IsNull(v) {
			return
		}
		k := render.Key(v)
		if _, ok := s.slot[k]; !ok {
			s.slot[k] = len(s.Levels)
			s.Levels = append(s.Levels, v)
		}
	}
	if cfg.Limits != nil {
		for _, v := range cfg.Limits {
			add(v)
		}
	} else {
		for _, v := range values {
			add(v)
		}
	}
	s.Breaks = append([]any(nil), s.Levels...)
	for _, v := range s.Levels {
		s.Labels = append(s.Labels, render.Key(v))
	}
}

// Map maps v into the output range. For discrete scales the output
// range is divided into one slot per level and v maps to the center of
// its slot. ok is false for nulls, values not in a discrete scale, and
// censored out-of-bounds values.
func (s *Trained) Map(v any) (y float64, ok bool) {
	var t float64
	switch s.Kind {
	case Discrete:
		i, ok := s.Slot(v)
		if !ok {
			return 0, false
		}
		t = (float64(i) + 0.5) / float64(len(s.Levels))
	default:
		x, ok := render.Float(v)
		if !ok {
			return 0, false
		}
		x = s.Transform.Forward(x)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		lo, hi := s.Domain[0], s.Domain[1]
		if x < lo || x > hi {
			if !s.squish {
				return 0, false
			}
			x = math.Max(lo, math.Min(hi, x))
		}
		t = (x - lo) / (hi - lo)
	}
	return s.Range[0] + t*(s.Range[1]-s.Range[0]), true
}

// MapOffset is like Map, but for discrete scales it also applies a
// slot offset, as recorded by position adjustments.
func (s *Trained) MapOffset(v any, offset float64) (float64, bool) {
	y, ok := s.Map(v)
	if !ok || s.Kind != Discrete || offset == 0 {
		return y, ok
	}
	return y + offset*(s.Range[1]-s.Range[0])/float64(len(s.Levels)), true
}

// Slot returns the index of v among a discrete scale's levels.
func (s *Trained) Slot(v any) (int, bool) {
	if s.Kind != Discrete || render.IsNull(v) {
		return 0, false
	}
	i, ok := s.slot[render.Key(v)]
	return i, ok
}

// Invert maps an output-range position of a continuous scale back to
// data space.
func (s *Trained) Invert(y float64) float64 {
	t := (y - s.Range[0]) / (s.Range[1] - s.Range[0])
	return s.Transform.Inverse(s.Domain[0] + t*(s.Domain[1]-s.Domain[0]))
}
