// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/diag"
	"github.com/aclements/go-gglayer/render"
	"github.com/aclements/go-gglayer/scale"
)

// Aesthetics trained into ordinary scales besides the two axes.
// Label, group, weight, sample, width, and z are never scaled.
var scaledAes = []aes.Aes{aes.Size, aes.Alpha, aes.Shape, aes.Linetype, aes.Linewidth}

// axisFields returns the positional record fields trained into axis's
// scale.
func axisFields(axis aes.Aes) []aes.Aes {
	var fs []aes.Aes
	for _, a := range aes.All {
		if a.IsPositional() && a.Family() == axis {
			fs = append(fs, a)
		}
	}
	return fs
}

// collect returns the non-null values of fields across all layers.
func (c *Chart) collect(fields ...aes.Aes) []any {
	var vals []any
	for _, l := range c.layers {
		for i := range l.Records {
			r := &l.Records[i]
			for _, f := range fields {
				if v := r.Get(string(f)); !render.IsNull(v) {
					vals = append(vals, v)
				}
			}
		}
	}
	return vals
}

// train trains every scale from the compiled layers. User scale
// configs are keyed by aesthetic. Under a flipped coordinate system
// the x and y configs follow their data to the other axis.
func (c *Chart) train(cfgs map[aes.Aes]scale.Config, colors map[aes.Aes]scale.ColorConfig) error {
	c.scales = make(map[aes.Aes]*scale.Trained)
	c.colors = make(map[aes.Aes]*scale.ColorScale)

	axisCfg := func(a aes.Aes) (scale.Config, bool) {
		src := a
		if c.coord.Kind == Flip {
			if a == aes.X {
				src = aes.Y
			} else {
				src = aes.X
			}
		}
		cfg, ok := cfgs[src]
		return cfg, ok
	}

	for _, a := range []aes.Aes{aes.X, aes.Y} {
		cfg, user := axisCfg(a)
		vals := c.collect(axisFields(a)...)
		if len(vals) == 0 && !user {
			continue
		}
		cfg.Aesthetic = string(a)
		if c.coord.Kind == Trans && cfg.Transform.Forward == nil {
			name := c.coord.XTrans
			if a == aes.Y {
				name = c.coord.YTrans
			}
			t, err := scale.ParseTransform(name)
			if err != nil {
				return err
			}
			cfg.Transform = t
		}
		s, err := scale.Train(vals, cfg)
		if err != nil {
			return err
		}
		c.scales[a] = s
	}

	for _, a := range scaledAes {
		cfg, user := cfgs[a]
		vals := c.collect(a)
		if len(vals) == 0 && !user {
			continue
		}
		cfg.Aesthetic = string(a)
		s, err := scale.Train(vals, cfg)
		if err != nil {
			return err
		}
		c.scales[a] = s
	}

	for _, a := range []aes.Aes{aes.Color, aes.Fill} {
		cfg, user := colors[a]
		vals := c.collect(a)
		if len(vals) == 0 && !user {
			continue
		}
		if !user && allNumeric(vals) {
			cfg.Type = scale.ColorGradient
		}
		s, err := scale.TrainColor(vals, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", a, err)
		}
		c.colors[a] = s
	}

	diag.Logger().Debug("scales trained", "scales", len(c.scales), "colors", len(c.colors))
	return nil
}

func allNumeric(vals []any) bool {
	for _, v := range vals {
		if !render.IsNumeric(v) {
			return false
		}
	}
	return len(vals) > 0
}
