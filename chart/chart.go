// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart assembles charts. A Builder collects the chart
// description; Build validates it, runs every layer's data through its
// mapping, stat, and position adjustment, trains the scales, and
// returns a frozen Chart for a renderer to draw.
//
// A Chart is never modified after Build returns, and its accessors
// return copies, so it may be read from multiple goroutines.
package chart

import (
	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/layer"
	"github.com/aclements/go-gglayer/render"
	"github.com/aclements/go-gglayer/scale"
)

// Labels are the chart's titles. Aes maps aesthetic names to legend
// or axis titles; X and Y default to the mapped column names.
type Labels struct {
	Title, Subtitle, Caption string
	X, Y                     string
	Aes                      map[string]string
}

// Annotation is a fixed mark drawn independent of the data, such as a
// text label or a shaded rectangle.
type Annotation struct {
	Geom   layer.Geom
	Params map[string]any
}

// Layer is a compiled layer.
type Layer struct {
	Spec layer.Spec

	// Mapping is the layer's effective mapping.
	Mapping aes.Mapping

	// Records are the layer's render records, in panel order.
	Records []render.Record
}

// Chart is a compiled chart.
type Chart struct {
	table       *table.Table
	mapping     aes.Mapping
	layers      []Layer
	scales      map[aes.Aes]*scale.Trained
	colors      map[aes.Aes]*scale.ColorScale
	facet       Facet
	panels      []Panel
	coord       Coord
	labels      Labels
	theme       map[string]any
	guides      map[string]string
	annotations []Annotation
}

// Table returns the chart's table.
func (c *Chart) Table() *table.Table { return c.table }

// Mapping returns the plot-level mapping.
func (c *Chart) Mapping() aes.Mapping { return c.mapping.Copy() }

// NumLayers returns the number of layers.
func (c *Chart) NumLayers() int { return len(c.layers) }

// Layer returns compiled layer i.
func (c *Chart) Layer(i int) Layer {
	l := c.layers[i]
	l.Mapping = l.Mapping.Copy()
	l.Records = render.Clone(l.Records)
	return l
}

// Layers returns every compiled layer.
func (c *Chart) Layers() []Layer {
	out := make([]Layer, len(c.layers))
	for i := range out {
		out[i] = c.Layer(i)
	}
	return out
}

// Scale returns the trained scale of a non-color aesthetic. Positional
// aesthetics share the scale of their axis ("x" or "y").
func (c *Chart) Scale(a aes.Aes) (*scale.Trained, bool) {
	s, ok := c.scales[a.Family()]
	return s, ok
}

// ColorScale returns the trained color scale of color or fill.
func (c *Chart) ColorScale(a aes.Aes) (*scale.ColorScale, bool) {
	s, ok := c.colors[a]
	return s, ok
}

// ScaledAes returns the aesthetics that have trained scales, color
// scales included, sorted.
func (c *Chart) ScaledAes() []aes.Aes {
	var out []aes.Aes
	for _, a := range aes.All {
		if _, ok := c.scales[a]; ok {
			out = append(out, a)
		} else if _, ok := c.colors[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Facet returns the facet specification.
func (c *Chart) Facet() Facet { return c.facet.clone() }

// Panels returns the facet panels. An unfaceted chart has one.
func (c *Chart) Panels() []Panel {
	out := make([]Panel, len(c.panels))
	for i, p := range c.panels {
		out[i] = p.clone()
	}
	return out
}

// Coord returns the coordinate system.
func (c *Chart) Coord() Coord { return c.coord }

// Labels returns the chart's titles.
func (c *Chart) Labels() Labels {
	l := c.labels
	l.Aes = copyMap(c.labels.Aes)
	return l
}

// Theme returns the theme settings, which are passed through to the
// renderer untouched.
func (c *Chart) Theme() map[string]any { return copyMap(c.theme) }

// Guides returns the legend and axis guide settings by aesthetic.
func (c *Chart) Guides() map[string]string { return copyMap(c.guides) }

// Annotations returns the chart's annotations.
func (c *Chart) Annotations() []Annotation {
	out := make([]Annotation, len(c.annotations))
	for i, a := range c.annotations {
		out[i] = Annotation{a.Geom, copyMap(a.Params)}
	}
	return out
}

func copyMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
