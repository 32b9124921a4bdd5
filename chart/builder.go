// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/diag"
	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/layer"
	"github.com/aclements/go-gglayer/position"
	"github.com/aclements/go-gglayer/render"
	"github.com/aclements/go-gglayer/scale"
	"github.com/aclements/go-gglayer/stat"
)

// Builder collects a chart description. Its methods return the
// Builder so calls can be chained. A Builder may be built more than
// once; each Build produces an independent Chart.
type Builder struct {
	table       *table.Table
	mapping     aes.Mapping
	layers      []layer.Spec
	scales      map[aes.Aes]scale.Config
	colors      map[aes.Aes]scale.ColorConfig
	facet       Facet
	coord       Coord
	labels      Labels
	theme       map[string]any
	guides      map[string]string
	annotations []Annotation
}

// NewBuilder starts a chart of t with plot-level mapping m.
func NewBuilder(t *table.Table, m aes.Mapping) *Builder {
	return &Builder{
		table:   t,
		mapping: m.Copy(),
		scales:  make(map[aes.Aes]scale.Config),
		colors:  make(map[aes.Aes]scale.ColorConfig),
	}
}

// Layer adds a layer.
func (b *Builder) Layer(s layer.Spec) *Builder {
	b.layers = append(b.layers, s)
	return b
}

// Scale configures the scale of a non-color aesthetic.
func (b *Builder) Scale(a aes.Aes, c scale.Config) *Builder {
	b.scales[a.Family()] = c
	return b
}

// ColorScale configures the color scale of color or fill.
func (b *Builder) ColorScale(a aes.Aes, c scale.ColorConfig) *Builder {
	b.colors[a] = c
	return b
}

// Facet sets the facet specification.
func (b *Builder) Facet(f Facet) *Builder {
	b.facet = f.clone()
	return b
}

// Coord sets the coordinate system.
func (b *Builder) Coord(c Coord) *Builder {
	b.coord = c
	return b
}

// Labels sets the chart's titles.
func (b *Builder) Labels(l Labels) *Builder {
	l.Aes = copyMap(l.Aes)
	b.labels = l
	return b
}

// Theme sets the theme settings.
func (b *Builder) Theme(th map[string]any) *Builder {
	b.theme = copyMap(th)
	return b
}

// Guide sets the guide of an aesthetic, such as "legend", "colorbar",
// or "none".
func (b *Builder) Guide(a aes.Aes, g string) *Builder {
	if b.guides == nil {
		b.guides = make(map[string]string)
	}
	b.guides[string(a)] = g
	return b
}

// Annotate adds an annotation.
func (b *Builder) Annotate(geom string, params map[string]any) *Builder {
	b.annotations = append(b.annotations, Annotation{layer.Geom(geom), copyMap(params)})
	return b
}

// Build validates the description and compiles it into a Chart.
//
// Validation and mapping problems are returned as ggerr validation or
// mapping errors. Any other failure, including a panic inside a stat,
// is returned as a ggerr compilation error wrapping the cause.
func (b *Builder) Build() (c *Chart, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, ggerr.Compilation("chart", fmt.Errorf("panic: %v", r))
		}
	}()
	c, err = b.build()
	if err != nil {
		return nil, ggerr.Compilation("chart", err)
	}
	return c, nil
}

func (b *Builder) build() (*Chart, error) {
	if b.table == nil {
		return nil, ggerr.Validationf("chart", "chart has no table")
	}
	if err := aes.Validate(b.mapping, b.table); err != nil {
		return nil, err
	}
	coord, err := b.coord.normalize()
	if err != nil {
		return nil, err
	}
	if err := b.facet.validate(b.table); err != nil {
		return nil, err
	}
	for _, a := range b.annotations {
		if _, err := layer.ParseGeom(string(a.Geom)); err != nil {
			return nil, fmt.Errorf("annotation: %w", err)
		}
	}

	c := &Chart{
		table:       b.table,
		mapping:     b.mapping.Copy(),
		facet:       b.facet.clone(),
		coord:       coord,
		labels:      b.labels,
		theme:       copyMap(b.theme),
		guides:      copyMap(b.guides),
		annotations: make([]Annotation, len(b.annotations)),
	}
	c.labels.Aes = copyMap(b.labels.Aes)
	for i, a := range b.annotations {
		g, _ := layer.ParseGeom(string(a.Geom))
		c.annotations[i] = Annotation{g, copyMap(a.Params)}
	}
	if c.labels.X == "" {
		c.labels.X, _ = b.mapping.ColumnOf(aes.X)
	}
	if c.labels.Y == "" {
		c.labels.Y, _ = b.mapping.ColumnOf(aes.Y)
	}

	ps := newPanelSet(b.facet, b.table)
	c.panels = ps.panels

	// Validate every layer before running any of them.
	type plan struct {
		spec    layer.Spec
		data    *table.Table
		mapping aes.Mapping
	}
	plans := make([]plan, len(b.layers))
	for i, s := range b.layers {
		s = s.Canonical()
		p, err := b.planLayer(i, s)
		if err != nil {
			return nil, err
		}
		plans[i] = plan{s, p.data, p.mapping}
	}

	for i, p := range plans {
		recs, err := compileLayer(i, p.spec, p.data, p.mapping, ps)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, p.spec.Geom, err)
		}
		if coord.Kind == Flip {
			flip(recs)
		}
		c.layers = append(c.layers, Layer{Spec: p.spec, Mapping: p.mapping, Records: recs})
	}

	if err := c.train(b.scales, b.colors); err != nil {
		return nil, err
	}
	return c, nil
}

type layerPlan struct {
	data    *table.Table
	mapping aes.Mapping
}

// planLayer validates layer i and resolves its data and mapping.
func (b *Builder) planLayer(i int, s layer.Spec) (layerPlan, error) {
	wrap := func(err error) error {
		return fmt.Errorf("layer %d (%s): %w", i, s.Geom, err)
	}
	if err := s.Check(); err != nil {
		return layerPlan{}, wrap(err)
	}
	data := s.Data
	if data == nil {
		data = b.table
	}
	m := aes.Resolve(b.mapping, s.Mapping, s.Inherit)
	if err := aes.Validate(m, data); err != nil {
		return layerPlan{}, wrap(err)
	}
	if a, ok := s.Missing(m); ok {
		return layerPlan{}, wrap(ggerr.Validationf("layer", "geometry %s with stat %s requires aesthetic %s", s.Geom, s.Stat.Kind, a))
	}
	return layerPlan{data, m}, nil
}

// compileLayer evaluates a layer's mapping and runs its stat and
// position adjustment separately in each facet panel.
func compileLayer(i int, s layer.Spec, data *table.Table, m aes.Mapping, ps *panelSet) ([]render.Record, error) {
	recs, err := aes.Evaluate(m, data)
	if err != nil {
		return nil, err
	}

	// Split rows by panel.
	byPanel := make([][]render.Record, len(ps.panels))
	if assign, ok := ps.assign(data); ok {
		dropped := 0
		for j := range recs {
			p := assign[j]
			if p < 0 {
				dropped++
				continue
			}
			recs[j].Panel = p
			byPanel[p] = append(byPanel[p], recs[j])
		}
		if dropped > 0 {
			diag.Logger().Warn("rows outside every facet panel dropped", "layer", i, "rows", dropped)
		}
	} else {
		// Layer data without the facet columns repeats in every
		// panel.
		for p := range byPanel {
			cp := render.Clone(recs)
			for j := range cp {
				cp[j].Panel = p
			}
			byPanel[p] = cp
		}
	}

	sc, pc := s.EffectiveStat(), s.EffectivePosition()
	var out []render.Record
	for p, rows := range byPanel {
		if len(rows) == 0 {
			continue
		}
		got, err := stat.Apply(sc, stat.Input{Records: rows, Table: data, Mapping: m, Layer: i})
		if err != nil {
			return nil, err
		}
		for j := range got {
			got[j].Panel = p
		}
		got, err = position.Apply(pc, got)
		if err != nil {
			return nil, err
		}
		diag.Logger().Debug("layer panel compiled", "layer", i, "geom", s.Geom, "stat", sc.Kind, "position", pc.Kind, "panel", p, "in", len(rows), "out", len(got))
		out = append(out, got...)
	}
	return out, nil
}
