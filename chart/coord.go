// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"strings"

	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/render"
	"github.com/aclements/go-gglayer/scale"
)

// Coordinate systems.
const (
	Cartesian = "cartesian"
	Flip      = "flip"
	Fixed     = "fixed"
	Polar     = "polar"
	Trans     = "trans"
)

// Coord is a coordinate system. The zero Coord is Cartesian.
type Coord struct {
	Kind string

	// Ratio is the y/x aspect ratio of Fixed (default 1).
	Ratio float64

	// Theta is the aesthetic mapped to angle by Polar, "x" (the
	// default) or "y".
	Theta string

	// XTrans and YTrans name the axis transforms of Trans.
	XTrans, YTrans string
}

func (c Coord) normalize() (Coord, error) {
	c.Kind = strings.TrimPrefix(strings.ToLower(c.Kind), "coord_")
	switch c.Kind {
	case "":
		c.Kind = Cartesian
	case Cartesian, Flip, Polar:
	case Fixed, "equal":
		c.Kind = Fixed
		if c.Ratio < 0 {
			return c, ggerr.Validationf("coord", "aspect ratio must be positive, got %v", c.Ratio)
		}
		if c.Ratio == 0 {
			c.Ratio = 1
		}
	case Trans:
		for _, t := range []string{c.XTrans, c.YTrans} {
			if _, err := scale.ParseTransform(t); err != nil {
				return c, ggerr.Validation("coord", err)
			}
		}
	default:
		return c, ggerr.Validationf("coord", "unsupported coordinate system %q", c.Kind)
	}
	switch c.Theta {
	case "":
		if c.Kind == Polar {
			c.Theta = "x"
		}
	case "x", "y":
	default:
		return c, ggerr.Validationf("coord", "polar theta must be x or y, got %q", c.Theta)
	}
	return c, nil
}

// flip swaps the x and y aesthetics of every record.
func flip(rs []render.Record) {
	for i := range rs {
		r := &rs[i]
		r.X, r.Y = r.Y, r.X
		r.XEnd, r.YEnd = r.YEnd, r.XEnd
		r.XMin, r.YMin = r.YMin, r.XMin
		r.XMax, r.YMax = r.YMax, r.XMax
		r.XOffset, r.YOffset = r.YOffset, r.XOffset
	}
}
