// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layer

import (
	"sort"
	"strings"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/ggerr"
	"github.com/aclements/go-gglayer/position"
	"github.com/aclements/go-gglayer/stat"
)

// Geom is a geometry kind.
type Geom string

const (
	Point      Geom = "point"
	Line       Geom = "line"
	Path       Geom = "path"
	Step       Geom = "step"
	Area       Geom = "area"
	Ribbon     Geom = "ribbon"
	Polygon    Geom = "polygon"
	Bar        Geom = "bar"
	Col        Geom = "col"
	Histogram  Geom = "histogram"
	Freqpoly   Geom = "freqpoly"
	Boxplot    Geom = "boxplot"
	Violin     Geom = "violin"
	Density    Geom = "density"
	Smooth     Geom = "smooth"
	Quantile   Geom = "quantile"
	Text       Geom = "text"
	Label      Geom = "label"
	Tile       Geom = "tile"
	Raster     Geom = "raster"
	Rect       Geom = "rect"
	Segment    Geom = "segment"
	Errorbar   Geom = "errorbar"
	Errorbarh  Geom = "errorbarh"
	Linerange  Geom = "linerange"
	Pointrange Geom = "pointrange"
	Crossbar   Geom = "crossbar"
	Hline      Geom = "hline"
	Vline      Geom = "vline"
	Abline     Geom = "abline"
	Jitter     Geom = "jitter"
	Count      Geom = "count"
	Rug        Geom = "rug"
	Hex        Geom = "hex"
	Bin2D      Geom = "bin_2d"
	Contour    Geom = "contour"
	Density2D  Geom = "density_2d"
	QQ         Geom = "qq"
	QQLine     Geom = "qq_line"
	Function   Geom = "function"
)

type geomInfo struct {
	stat     stat.Kind
	position position.Kind

	// drawn lists the aesthetics the geometry needs to draw a
	// record, which a layer with the identity stat must map.
	drawn []aes.Aes

	// stats, if non-nil, are the only stats the geometry can be
	// paired with.
	stats []stat.Kind
}

var (
	xy     = []aes.Aes{aes.X, aes.Y}
	xRange = []aes.Aes{aes.X, aes.YMin, aes.YMax}
	xyBox  = []aes.Aes{aes.X, aes.Y, aes.YMin, aes.YMax}
)

var geoms = map[Geom]geomInfo{
	Point:      {stat: stat.Identity, drawn: xy},
	Line:       {stat: stat.Identity, drawn: xy},
	Path:       {stat: stat.Identity, drawn: xy},
	Step:       {stat: stat.Identity, drawn: xy},
	Area:       {stat: stat.Align, position: position.Stack, drawn: xy},
	Ribbon:     {stat: stat.Identity, drawn: xRange},
	Polygon:    {stat: stat.Identity, drawn: xy},
	Bar:        {stat: stat.Count, position: position.Stack, drawn: xy},
	Col:        {stat: stat.Identity, position: position.Stack, drawn: xy},
	Histogram:  {stat: stat.Bin, position: position.Stack, drawn: xy},
	Freqpoly:   {stat: stat.Bin, drawn: xy},
	Boxplot:    {stat: stat.Boxplot, position: position.Dodge2, drawn: []aes.Aes{aes.X, aes.YMin, aes.YMax}, stats: []stat.Kind{stat.Boxplot, stat.Identity}},
	Violin:     {stat: stat.YDensity, position: position.Dodge, drawn: xy, stats: []stat.Kind{stat.YDensity, stat.Identity}},
	Density:    {stat: stat.Density, drawn: xy},
	Smooth:     {stat: stat.Smooth, drawn: xy, stats: []stat.Kind{stat.Smooth}},
	Quantile:   {stat: stat.Quantile, drawn: xy, stats: []stat.Kind{stat.Quantile}},
	Text:       {stat: stat.Identity, drawn: []aes.Aes{aes.X, aes.Y, aes.Label}},
	Label:      {stat: stat.Identity, drawn: []aes.Aes{aes.X, aes.Y, aes.Label}},
	Tile:       {stat: stat.Identity, drawn: xy},
	Raster:     {stat: stat.Identity, drawn: xy},
	Rect:       {stat: stat.Identity, drawn: []aes.Aes{aes.XMin, aes.XMax, aes.YMin, aes.YMax}},
	Segment:    {stat: stat.Identity, drawn: []aes.Aes{aes.X, aes.Y, aes.XEnd, aes.YEnd}},
	Errorbar:   {stat: stat.Identity, drawn: xRange},
	Errorbarh:  {stat: stat.Identity, drawn: []aes.Aes{aes.Y, aes.XMin, aes.XMax}},
	Linerange:  {stat: stat.Identity, drawn: xRange},
	Pointrange: {stat: stat.Identity, drawn: xyBox},
	Crossbar:   {stat: stat.Identity, drawn: xyBox},
	Hline:      {stat: stat.Identity},
	Vline:      {stat: stat.Identity},
	Abline:     {stat: stat.Identity},
	Jitter:     {stat: stat.Identity, position: position.Jitter, drawn: xy},
	Count:      {stat: stat.Sum, drawn: xy},
	Rug:        {stat: stat.Identity},
	Hex:        {stat: stat.BinHex, drawn: xy},
	Bin2D:      {stat: stat.Bin2D, drawn: xy},
	Contour:    {stat: stat.Contour, drawn: []aes.Aes{aes.X, aes.Y, aes.Z}},
	Density2D:  {stat: stat.Density2D, drawn: xy},
	QQ:         {stat: stat.QQ, drawn: xy},
	QQLine:     {stat: stat.QQLine, drawn: xy},
	Function:   {stat: stat.Function},
}

var geomAliases = map[string]Geom{
	"scatter":   Point,
	"column":    Col,
	"hist":      Histogram,
	"bin2d":     Bin2D,
	"density2d": Density2D,
	"qqline":    QQLine,
	"hexbin":    Hex,
}

// statInputs lists the aesthetics each non-identity stat reads.
var statInputs = map[stat.Kind][]aes.Aes{
	stat.Count:      {aes.X},
	stat.Bin:        {aes.X},
	stat.Boxplot:    {aes.Y},
	stat.Smooth:     xy,
	stat.Quantile:   xy,
	stat.Density:    {aes.X},
	stat.YDensity:   xy,
	stat.Summary:    xy,
	stat.SummaryBin: xy,
	stat.ECDF:       {aes.X},
	stat.QQ:         {aes.Sample},
	stat.QQLine:     {aes.Sample},
	stat.Ellipse:    xy,
	stat.Bin2D:      xy,
	stat.BinHex:     xy,
	stat.SummaryHex: {aes.X, aes.Y, aes.Z},
	stat.Summary2D:  {aes.X, aes.Y, aes.Z},
	stat.Align:      xy,
	stat.Contour:    {aes.X, aes.Y, aes.Z},
	stat.Density2D:  xy,
	stat.Sum:        xy,
}

// standIns lists aesthetics that may be mapped in place of a missing
// required one.
var standIns = map[aes.Aes]aes.Aes{
	aes.Sample: aes.Y,
}

// ParseGeom returns the geometry named name, with an optional "geom_"
// prefix. Geometries outside the supported set are validation errors.
func ParseGeom(name string) (Geom, error) {
	n := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "geom_")
	if g, ok := geomAliases[n]; ok {
		return g, nil
	}
	if _, ok := geoms[Geom(n)]; ok {
		return Geom(n), nil
	}
	return "", ggerr.Validationf("layer", "unsupported geometry %q (supported: %s)", name, strings.Join(GeomNames(), ", "))
}

// GeomNames returns the supported geometry names, sorted.
func GeomNames() []string {
	names := make([]string, 0, len(geoms))
	for g := range geoms {
		names = append(names, string(g))
	}
	sort.Strings(names)
	return names
}

// DefaultStat returns the stat g uses unless told otherwise.
func (g Geom) DefaultStat() stat.Kind {
	return geoms[g].stat
}

// DefaultPosition returns the position adjustment g uses unless told
// otherwise.
func (g Geom) DefaultPosition() position.Kind {
	return geoms[g].position
}

// RequiredAes returns the aesthetics a layer of geometry g with stat s
// must map. Stats that derive the drawn aesthetics require only their
// own inputs.
func RequiredAes(g Geom, s stat.Kind) []aes.Aes {
	if s == stat.Identity {
		return geoms[g].drawn
	}
	return statInputs[s]
}

// CheckStat reports a validation error if g cannot be drawn from the
// output of stat s.
func CheckStat(g Geom, s stat.Kind) error {
	ok := geoms[g].stats
	if ok == nil {
		return nil
	}
	for _, k := range ok {
		if k == s {
			return nil
		}
	}
	return ggerr.Validationf("layer", "geometry %s cannot be used with stat %s", g, s)
}
