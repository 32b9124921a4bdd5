// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layer describes chart layers: a geometry, the stat and
// position adjustment that prepare its data, and its aesthetic
// mapping.
package layer

import (
	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/position"
	"github.com/aclements/go-gglayer/stat"
)

// Spec is an immutable layer specification.
type Spec struct {
	Geom Geom

	// Stat and Position select the transforms. Their Params are
	// kind-specific overrides of StatParams and PositionParams.
	Stat     stat.Config
	Position position.Config

	// StatParams and PositionParams are layer-level parameters.
	StatParams     stat.Params
	PositionParams position.Params

	// Mapping is the layer's own mapping. It may be nil.
	Mapping aes.Mapping

	// Inherit selects whether the plot mapping applies to this
	// layer.
	Inherit bool

	// Data, if non-nil, replaces the chart's table for this layer.
	Data *table.Table

	// Params are free-form geometry parameters such as fixed
	// colors or line intercepts. They pass through to the
	// renderer.
	Params map[string]any
}

// An Option configures a Spec built by New.
type Option func(*Spec)

// New returns a layer of the named geometry, with the geometry's
// default stat and position, inheriting the plot mapping.
func New(geom string, opts ...Option) (Spec, error) {
	g, err := ParseGeom(geom)
	if err != nil {
		return Spec{}, err
	}
	s := Spec{
		Geom:     g,
		Stat:     stat.Config{Kind: g.DefaultStat(), Name: g.DefaultStat().String()},
		Position: position.Config{Kind: g.DefaultPosition(), Name: g.DefaultPosition().String()},
		Inherit:  true,
	}
	for _, o := range opts {
		o(&s)
	}
	return s, nil
}

// WithStat selects the stat by name, with kind-specific parameters.
// The empty name keeps the geometry's default.
func WithStat(name string, p stat.Params) Option {
	return func(s *Spec) {
		if name != "" {
			s.Stat.Kind, s.Stat.Name = stat.ParseKind(name), name
		}
		s.Stat.Params = p
	}
}

// WithPosition selects the position adjustment by name, with
// kind-specific parameters. The empty name keeps the geometry's
// default.
func WithPosition(name string, p position.Params) Option {
	return func(s *Spec) {
		if name != "" {
			s.Position.Kind, s.Position.Name = position.ParseKind(name), name
		}
		s.Position.Params = p
	}
}

// WithStatParams sets layer-level stat parameters.
func WithStatParams(p stat.Params) Option {
	return func(s *Spec) { s.StatParams = p }
}

// WithPositionParams sets layer-level position parameters.
func WithPositionParams(p position.Params) Option {
	return func(s *Spec) { s.PositionParams = p }
}

// WithMapping sets the layer's own mapping.
func WithMapping(m aes.Mapping) Option {
	return func(s *Spec) { s.Mapping = m.Copy() }
}

// NoInherit stops the layer from inheriting the plot mapping.
func NoInherit() Option {
	return func(s *Spec) { s.Inherit = false }
}

// WithData gives the layer its own table.
func WithData(t *table.Table) Option {
	return func(s *Spec) { s.Data = t }
}

// WithParam sets a free-form geometry parameter.
func WithParam(key string, v any) Option {
	return func(s *Spec) {
		m := make(map[string]any, len(s.Params)+1)
		for k, v := range s.Params {
			m[k] = v
		}
		m[key] = v
		s.Params = m
	}
}

// EffectiveStat returns the stat config with layer-level parameters
// merged under the kind-specific ones.
func (s Spec) EffectiveStat() stat.Config {
	c := s.Stat
	c.Params = s.StatParams.Merge(s.Stat.Params)
	return c
}

// EffectivePosition returns the position config with layer-level
// parameters merged under the kind-specific ones.
func (s Spec) EffectivePosition() position.Config {
	c := s.Position
	c.Params = s.PositionParams.Merge(s.Position.Params)
	return c
}

// Canonical returns s with an alias or prefixed geometry name, such as
// "scatter" or "geom_point", replaced by the canonical one. An
// unsupported geometry is left as is for Check to report.
func (s Spec) Canonical() Spec {
	if g, err := ParseGeom(string(s.Geom)); err == nil {
		s.Geom = g
	}
	return s
}

// Required returns the aesthetics the layer must map.
func (s Spec) Required() []aes.Aes {
	return RequiredAes(s.Canonical().Geom, s.Stat.Kind)
}

// Missing returns the first required aesthetic that m does not bind.
// A required aesthetic with a stand-in, such as y for the sample of a
// QQ stat, is satisfied by either.
func (s Spec) Missing(m aes.Mapping) (aes.Aes, bool) {
	for _, a := range s.Required() {
		if m.Has(a) {
			continue
		}
		if alt, ok := standIns[a]; ok && m.Has(alt) {
			continue
		}
		return a, true
	}
	return "", false
}

// Check validates the layer on its own: a supported geometry paired
// with a stat it can draw.
func (s Spec) Check() error {
	g, err := ParseGeom(string(s.Geom))
	if err != nil {
		return err
	}
	return CheckStat(g, s.Stat.Kind)
}
