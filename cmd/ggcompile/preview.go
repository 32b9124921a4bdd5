// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/chart"
	"github.com/aclements/go-gglayer/layer"
	"github.com/aclements/go-gglayer/render"
	"github.com/aclements/go-gglayer/scale"
)

// connected geometries are previewed as lines. Everything else is
// previewed as points.
var connected = map[layer.Geom]bool{
	layer.Line: true, layer.Path: true, layer.Step: true, layer.Area: true,
	layer.Smooth: true, layer.Density: true, layer.Freqpoly: true,
	layer.Quantile: true, layer.Function: true, layer.QQLine: true,
}

// previewTables converts a chart's compiled layers into point and line
// tables in the chart's normalized [0, 1] coordinates.
func previewTables(c *chart.Chart) (points, lines *table.Table) {
	sx, _ := c.Scale(aes.X)
	sy, _ := c.Scale(aes.Y)
	pos := func(s *scale.Trained, v any, off float64) (float64, bool) {
		if s == nil {
			x, ok := render.Float(v)
			return x, ok
		}
		return s.MapOffset(v, off)
	}

	type cols struct {
		x, y  []float64
		layer []string
	}
	var pts, lns cols
	for i, l := range c.Layers() {
		dst := &pts
		if connected[l.Spec.Geom] {
			dst = &lns
		}
		name := fmt.Sprintf("%d %s", i, l.Spec.Geom)
		for _, r := range l.Records {
			x, ok1 := pos(sx, r.X, r.XOffset)
			y, ok2 := pos(sy, r.Y, r.YOffset)
			if !ok1 || !ok2 {
				continue
			}
			dst.x = append(dst.x, x)
			dst.y = append(dst.y, y)
			dst.layer = append(dst.layer, name)
		}
	}
	build := func(c cols) *table.Table {
		if len(c.x) == 0 {
			return nil
		}
		return new(table.Builder).Add("x", c.x).Add("y", c.y).Add("layer", c.layer).Done()
	}
	return build(pts), build(lns)
}

// writePreview renders a rough SVG of the compiled chart with go-gg.
func writePreview(w io.Writer, c *chart.Chart) error {
	points, lines := previewTables(c)
	if points == nil && lines == nil {
		return fmt.Errorf("nothing to preview")
	}
	var p *gg.Plot
	if points != nil {
		p = gg.NewPlot(points)
		p.Add(gg.LayerPoints{X: "x", Y: "y", Color: "layer"})
	}
	if lines != nil {
		if p == nil {
			p = gg.NewPlot(lines)
		} else {
			p.SetData(lines)
		}
		p.Add(gg.LayerLines{X: "x", Y: "y", Color: "layer"})
	}
	if t := c.Labels().Title; t != "" {
		p.Add(gg.Title(t))
	}
	return p.WriteSVG(w, 600, 400)
}
