// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"math"
	"strings"
)

// A Transform is a monotone function pair applied to continuous values
// before domain training and range mapping. Breaks are chosen in data
// space and labeled with untransformed values.
type Transform struct {
	Name    string
	Forward func(float64) float64
	Inverse func(float64) float64
}

var (
	Identity = Transform{"identity", ident, ident}
	Log10    = Transform{"log10", math.Log10, func(x float64) float64 { return math.Pow(10, x) }}
	Sqrt     = Transform{"sqrt", math.Sqrt, func(x float64) float64 { return x * x }}
	Reverse  = Transform{"reverse", neg, neg}

	// Date treats values as seconds since the Unix epoch (time.Time
	// values coerce to that) and labels breaks as dates.
	Date = Transform{"date", ident, ident}
)

func ident(x float64) float64 { return x }
func neg(x float64) float64   { return -x }

// Custom returns a transform from a forward and inverse pair.
func Custom(name string, forward, inverse func(float64) float64) Transform {
	return Transform{name, forward, inverse}
}

// ParseTransform returns the built-in transform called name.
func ParseTransform(name string) (Transform, error) {
	switch strings.ToLower(name) {
	case "", "identity", "linear":
		return Identity, nil
	case "log10", "log":
		return Log10, nil
	case "sqrt":
		return Sqrt, nil
	case "reverse":
		return Reverse, nil
	case "date", "time", "datetime":
		return Date, nil
	}
	return Transform{}, fmt.Errorf("unknown scale transform %q", name)
}

func (t Transform) isZero() bool {
	return t.Forward == nil
}

func (t Transform) valid() error {
	if (t.Forward == nil) != (t.Inverse == nil) {
		return fmt.Errorf("transform %q needs both forward and inverse functions", t.Name)
	}
	return nil
}
