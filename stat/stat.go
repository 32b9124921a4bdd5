// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stat implements the statistical transforms that turn a
// layer's evaluated rows into the rows that are drawn.
//
// Apply dispatches on a closed set of kinds. Each kind's options are
// fields of Params, with zero values selecting documented defaults in
// the style of go-gg's ggstat package. Kinds that are recognized but
// not implemented (and names that are not recognized at all) pass
// their input through unchanged and log a diagnostic, so that charts
// written against newer stat kinds still draw.
//
// Transforms are pure: they never modify their input records and
// share no state between calls.
package stat

import (
	"fmt"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/diag"
	"github.com/aclements/go-gglayer/render"
)

// Kind is a statistical transform.
type Kind int

const (
	Identity Kind = iota
	Count
	Bin
	Boxplot
	Smooth
	Quantile
	Density
	YDensity
	Summary
	SummaryBin
	ECDF
	QQ
	QQLine
	Ellipse
	Bin2D
	BinHex
	SummaryHex
	Summary2D
	Function
	Align
	Unique

	// The following kinds are recognized but not implemented.
	// They pass data through unchanged.
	Contour
	ContourFilled
	Density2D
	Density2DFilled
	Sum

	// Unimplemented is any kind name that is not recognized.
	Unimplemented
)

var kindNames = [...]string{
	Identity:        "identity",
	Count:           "count",
	Bin:             "bin",
	Boxplot:         "boxplot",
	Smooth:          "smooth",
	Quantile:        "quantile",
	Density:         "density",
	YDensity:        "ydensity",
	Summary:         "summary",
	SummaryBin:      "summary_bin",
	ECDF:            "ecdf",
	QQ:              "qq",
	QQLine:          "qq_line",
	Ellipse:         "ellipse",
	Bin2D:           "bin_2d",
	BinHex:          "bin_hex",
	SummaryHex:      "summary_hex",
	Summary2D:       "summary_2d",
	Function:        "function",
	Align:           "align",
	Unique:          "unique",
	Contour:         "contour",
	ContourFilled:   "contour_filled",
	Density2D:       "density_2d",
	Density2DFilled: "density_2d_filled",
	Sum:             "sum",
	Unimplemented:   "unimplemented",
}

var kindAliases = map[string]Kind{
	"bin2d":       Bin2D,
	"binhex":      BinHex,
	"hex":         BinHex,
	"summary2d":   Summary2D,
	"histogram":   Bin,
	"quantreg":    Quantile,
	"violin":      YDensity,
	"density2d":   Density2D,
	"qqline":      QQLine,
	"summarybin":  SummaryBin,
	"summary_hex": SummaryHex,
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Implemented reports whether k has an algorithm behind it, as
// opposed to falling back to identity.
func (k Kind) Implemented() bool {
	return k <= Unique
}

// ParseKind returns the kind named name. Names are case-insensitive
// and may carry a "stat_" prefix. Unrecognized names return
// Unimplemented.
func ParseKind(name string) Kind {
	n := strings.ToLower(strings.TrimPrefix(strings.ToLower(name), "stat_"))
	for k, kn := range kindNames {
		if kn == n && Kind(k) != Unimplemented {
			return Kind(k)
		}
	}
	if k, ok := kindAliases[n]; ok {
		return k
	}
	return Unimplemented
}

// Config selects a transform and its parameters.
type Config struct {
	Kind Kind

	// Name is the kind name as written by the user. It is only
	// used for diagnostics, and may be "".
	Name string

	Params Params
}

// Input is the data a transform operates on.
type Input struct {
	// Records are the evaluated rows of the layer, one per table
	// row.
	Records []render.Record

	// Table is the source table. It may be nil; only Unique
	// consults it.
	Table *table.Table

	// Mapping is the layer's effective mapping.
	Mapping aes.Mapping

	// Layer identifies the layer in diagnostics.
	Layer int
}

// Apply runs the transform selected by c over in. It does not modify
// in.Records.
func Apply(c Config, in Input) ([]render.Record, error) {
	p := c.Params
	switch c.Kind {
	case Identity:
		return in.Records, nil
	case Count:
		return count(p, in.Records)
	case Bin:
		return bin(p, in.Records)
	case Boxplot:
		return boxplot(p, in.Records)
	case Smooth:
		return smooth(p, in.Records)
	case Quantile:
		return quantile(p, in.Records)
	case Density:
		return density(p, in.Records)
	case YDensity:
		return ydensity(p, in.Records)
	case Summary:
		return summary(p, in.Records)
	case SummaryBin:
		return summaryBin(p, in.Records)
	case ECDF:
		return ecdf(p, in.Records)
	case QQ:
		return qq(p, in.Records)
	case QQLine:
		return qqLine(p, in.Records)
	case Ellipse:
		return ellipse(p, in.Records)
	case Bin2D:
		return bin2D(p, in.Records, false)
	case Summary2D:
		return bin2D(p, in.Records, true)
	case BinHex:
		return binHex(p, in.Records, false)
	case SummaryHex:
		return binHex(p, in.Records, true)
	case Function:
		return function(p, in.Records)
	case Align:
		return align(p, in.Records)
	case Unique:
		return unique(p, in)
	case Contour, ContourFilled, Density2D, Density2DFilled, Sum, Unimplemented:
		name := c.Name
		if name == "" {
			name = c.Kind.String()
		}
		diag.Logger().Warn("stat not implemented; passing data through unchanged",
			"stat", name, "layer", in.Layer)
		return in.Records, nil
	}
	panic(fmt.Sprintf("stat: unknown kind %d", int(c.Kind)))
}
