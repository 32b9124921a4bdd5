// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

// Params are the options of every stat kind. Each kind reads only the
// fields documented for it. The zero value of a field selects its
// default; options where zero is a meaningful setting are pointers.
type Params struct {
	// Bins is the number of bins for Bin, SummaryBin, Bin2D,
	// Summary2D, BinHex, and SummaryHex. Default 30.
	Bins int

	// BinsY overrides Bins for the y axis of the 2-D binning kinds.
	BinsY int

	// Binwidth, if positive, overrides Bins.
	Binwidth float64

	// BinwidthY overrides Binwidth for the y axis of the 2-D
	// binning kinds.
	BinwidthY float64

	// Boundary is an edge of some bin, used to align bins to a
	// fixed grid. Center is the center of some bin. At most one
	// should be set; Boundary wins.
	Boundary, Center *float64

	// Pad adds an empty bin at each end for Bin, and a leading
	// zero point for ECDF. ECDF pads by default.
	Pad *bool

	// Coef is the whisker length of Boxplot as a multiple of the
	// IQR. Default 1.5.
	Coef float64

	// Width is the box width of Boxplot and the violin width of
	// YDensity. Default 0.9.
	Width float64

	// Method is the Smooth fitting method: "lm" (the default) or
	// "loess".
	Method string

	// Formula is the Smooth or Quantile model, such as "y ~ x" or
	// "y ~ poly(x, 2)".
	Formula string

	// Degree is the polynomial degree of Smooth and Quantile. It
	// must agree with Formula when both are given.
	Degree int

	// Span is the loess smoothing span. Default 0.75.
	Span float64

	// SE enables the Smooth confidence band. Default true.
	SE *bool

	// Level is the confidence level for Smooth and Ellipse.
	// Default 0.95.
	Level float64

	// N is the number of evaluation points of Smooth (default 80),
	// Quantile (100), Density (512), and Function (101). Negative
	// values are an error.
	N int

	// Quantiles are the Quantile regression quantiles. Default
	// 0.25, 0.5, 0.75.
	Quantiles []float64

	// Kernel is the Density kernel: "gaussian" (the default),
	// "epanechnikov", "rectangular", "triangular", "biweight",
	// "cosine", or "optcosine".
	Kernel string

	// BW is an explicit Density bandwidth. If zero, BWRule
	// selects one: "nrd0" (the default) or "nrd".
	BW     float64
	BWRule string

	// Adjust multiplies the bandwidth. Default 1.
	Adjust float64

	// Trim restricts each Density group to its own range instead
	// of the range of all groups.
	Trim bool

	// From and To override the Density evaluation range.
	From, To *float64

	// Scale is the YDensity width scaling: "area" (the default),
	// "count", or "width".
	Scale string

	// Fun names the Summary aggregate for y, or the aggregate of z
	// for Summary2D and SummaryHex: mean, median, sum, min, max,
	// count, sd, or var. FunMin and FunMax aggregate ymin and
	// ymax.
	Fun, FunMin, FunMax string

	// FunData names a Summary function producing y, ymin, and ymax
	// at once: mean_se (the default), mean_cl_normal, median_hilow,
	// or mean_sdl.
	FunData string

	// ConfInt is the confidence level of mean_cl_normal and
	// median_hilow. Default 0.95.
	ConfInt float64

	// Mult is the multiplier of mean_se (default 1) and mean_sdl
	// (default 2).
	Mult float64

	// Type is the Ellipse type: "t" (the default), "norm", "euclid",
	// or "raw".
	Type string

	// Segments is the number of Ellipse segments. Default 51.
	Segments int

	// Fn is the Function to evaluate.
	Fn func(float64) float64

	// XLim is the Function domain. If nil, the data's x range is
	// used, or [0, 1] without data.
	XLim []float64

	// Columns are the Unique key columns. If nil, the mapped
	// columns are used.
	Columns []string
}

// Merge returns p overridden by every field set in over.
func (p Params) Merge(over Params) Params {
	if over.Bins != 0 {
		p.Bins = over.Bins
	}
	if over.BinsY != 0 {
		p.BinsY = over.BinsY
	}
	if over.Binwidth != 0 {
		p.Binwidth = over.Binwidth
	}
	if over.BinwidthY != 0 {
		p.BinwidthY = over.BinwidthY
	}
	if over.Boundary != nil {
		p.Boundary = over.Boundary
	}
	if over.Center != nil {
		p.Center = over.Center
	}
	if over.Pad != nil {
		p.Pad = over.Pad
	}
	if over.Coef != 0 {
		p.Coef = over.Coef
	}
	if over.Width != 0 {
		p.Width = over.Width
	}
	if over.Method != "" {
		p.Method = over.Method
	}
	if over.Formula != "" {
		p.Formula = over.Formula
	}
	if over.Degree != 0 {
		p.Degree = over.Degree
	}
	if over.Span != 0 {
		p.Span = over.Span
	}
	if over.SE != nil {
		p.SE = over.SE
	}
	if over.Level != 0 {
		p.Level = over.Level
	}
	if over.N != 0 {
		p.N = over.N
	}
	if over.Quantiles != nil {
		p.Quantiles = over.Quantiles
	}
	if over.Kernel != "" {
		p.Kernel = over.Kernel
	}
	if over.BW != 0 {
		p.BW = over.BW
	}
	if over.BWRule != "" {
		p.BWRule = over.BWRule
	}
	if over.Adjust != 0 {
		p.Adjust = over.Adjust
	}
	if over.Trim {
		p.Trim = true
	}
	if over.From != nil {
		p.From = over.From
	}
	if over.To != nil {
		p.To = over.To
	}
	if over.Scale != "" {
		p.Scale = over.Scale
	}
	if over.Fun != "" {
		p.Fun = over.Fun
	}
	if over.FunMin != "" {
		p.FunMin = over.FunMin
	}
	if over.FunMax != "" {
		p.FunMax = over.FunMax
	}
	if over.FunData != "" {
		p.FunData = over.FunData
	}
	if over.ConfInt != 0 {
		p.ConfInt = over.ConfInt
	}
	if over.Mult != 0 {
		p.Mult = over.Mult
	}
	if over.Type != "" {
		p.Type = over.Type
	}
	if over.Segments != 0 {
		p.Segments = over.Segments
	}
	if over.Fn != nil {
		p.Fn = over.Fn
	}
	if over.XLim != nil {
		p.XLim = over.XLim
	}
	if over.Columns != nil {
		p.Columns = over.Columns
	}
	return p
}

func (p Params) n(def int) (int, error) {
	switch {
	case p.N < 0:
		return 0, errorf("n must be at least 1, got %d", p.N)
	case p.N == 0:
		return def, nil
	}
	return p.N, nil
}

func (p Params) level() (float64, error) {
	if p.Level == 0 {
		return 0.95, nil
	}
	if !(p.Level > 0 && p.Level < 1) {
		return 0, errorf("level must be in (0, 1), got %v", p.Level)
	}
	return p.Level, nil
}

func (p Params) pad(def bool) bool {
	if p.Pad == nil {
		return def
	}
	return *p.Pad
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Float64 returns a pointer to v, for the optional fields of Params.
func Float64(v float64) *float64 { return &v }

// Bool returns a pointer to v, for the optional fields of Params.
func Bool(v bool) *bool { return &v }
