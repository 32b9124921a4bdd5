// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/chart"
	"github.com/aclements/go-gglayer/layer"
	"github.com/aclements/go-gglayer/position"
	"github.com/aclements/go-gglayer/scale"
	"github.com/aclements/go-gglayer/stat"
)

// chartConfig is the YAML chart description.
type chartConfig struct {
	Title   string                 `yaml:"title"`
	Mapping map[string]string      `yaml:"mapping"`
	Layers  []layerConfig          `yaml:"layers"`
	Scales  map[string]scaleConfig `yaml:"scales"`
	Colors  map[string]colorConfig `yaml:"colors"`
	Facet   chart.Facet            `yaml:"facet"`
	Coord   coordConfig            `yaml:"coord"`
	Labels  map[string]string      `yaml:"labels"`
	Guides  map[string]string      `yaml:"guides"`
	Theme   map[string]any         `yaml:"theme"`
	Notes   []map[string]any       `yaml:"annotations"`
}

type layerConfig struct {
	Geom     string            `yaml:"geom"`
	Stat     string            `yaml:"stat"`
	Position string            `yaml:"position"`
	Mapping  map[string]string `yaml:"mapping"`
	Inherit  *bool             `yaml:"inherit"`
	Params   statConfig        `yaml:"params"`
	Adjust   positionConfig    `yaml:"adjust"`
}

// statConfig holds the stat parameters a chart file may set.
type statConfig struct {
	Bins      int       `yaml:"bins"`
	Binwidth  float64   `yaml:"binwidth"`
	Boundary  *float64  `yaml:"boundary"`
	Center    *float64  `yaml:"center"`
	Pad       *bool     `yaml:"pad"`
	Coef      float64   `yaml:"coef"`
	Width     float64   `yaml:"width"`
	Method    string    `yaml:"method"`
	Formula   string    `yaml:"formula"`
	Degree    int       `yaml:"degree"`
	Span      float64   `yaml:"span"`
	SE        *bool     `yaml:"se"`
	Level     float64   `yaml:"level"`
	N         int       `yaml:"n"`
	Quantiles []float64 `yaml:"quantiles"`
	Kernel    string    `yaml:"kernel"`
	BW        float64   `yaml:"bw"`
	BWRule    string    `yaml:"bw_rule"`
	Adjust    float64   `yaml:"adjust"`
	Trim      bool      `yaml:"trim"`
	Fun       string    `yaml:"fun"`
	FunData   string    `yaml:"fun_data"`
	Type      string    `yaml:"type"`
	Segments  int       `yaml:"segments"`
	Columns   []string  `yaml:"columns"`
}

func (c statConfig) params() stat.Params {
	return stat.Params{
		Bins: c.Bins, Binwidth: c.Binwidth, Boundary: c.Boundary, Center: c.Center, Pad: c.Pad,
		Coef: c.Coef, Width: c.Width,
		Method: c.Method, Formula: c.Formula, Degree: c.Degree, Span: c.Span, SE: c.SE, Level: c.Level,
		N: c.N, Quantiles: c.Quantiles,
		Kernel: c.Kernel, BW: c.BW, BWRule: c.BWRule, Adjust: c.Adjust, Trim: c.Trim,
		Fun: c.Fun, FunData: c.FunData,
		Type: c.Type, Segments: c.Segments,
		Columns: c.Columns,
	}
}

type positionConfig struct {
	Width        float64  `yaml:"width"`
	Padding      float64  `yaml:"padding"`
	Preserve     string   `yaml:"preserve"`
	Reverse      bool     `yaml:"reverse"`
	VJust        *float64 `yaml:"vjust"`
	JitterWidth  *float64 `yaml:"jitter_width"`
	JitterHeight *float64 `yaml:"jitter_height"`
	Seed         *int64   `yaml:"seed"`
	NudgeX       float64  `yaml:"nudge_x"`
	NudgeY       float64  `yaml:"nudge_y"`
}

func (c positionConfig) params() position.Params {
	return position.Params{
		Width: c.Width, Padding: c.Padding, Preserve: c.Preserve, Reverse: c.Reverse, VJust: c.VJust,
		JitterWidth: c.JitterWidth, JitterHeight: c.JitterHeight, Seed: c.Seed,
		NudgeX: c.NudgeX, NudgeY: c.NudgeY,
	}
}

type scaleConfig struct {
	Kind      string    `yaml:"kind"`
	Transform string    `yaml:"transform"`
	Limits    []any     `yaml:"limits"`
	Expand    []float64 `yaml:"expand"`
	Breaks    int       `yaml:"breaks"`
	Labels    string    `yaml:"labels"`
	OOB       string    `yaml:"oob"`
}

func (c scaleConfig) config(a string) (scale.Config, error) {
	cfg := scale.Config{Aesthetic: a, Limits: c.Limits, Breaks: c.Breaks, Labels: c.Labels, OOB: c.OOB}
	switch c.Kind {
	case "", "auto":
	case "continuous":
		cfg.Kind = scale.Continuous
	case "discrete":
		cfg.Kind = scale.Discrete
	default:
		return cfg, fmt.Errorf("scale %s: unknown kind %q", a, c.Kind)
	}
	t, err := scale.ParseTransform(c.Transform)
	if err != nil {
		return cfg, fmt.Errorf("scale %s: %w", a, err)
	}
	cfg.Transform = t
	switch len(c.Expand) {
	case 0:
	case 2:
		cfg.Expand = scale.Expand{Mult: c.Expand[0], Add: c.Expand[1]}
	default:
		return cfg, fmt.Errorf("scale %s: expand needs [mult, add]", a)
	}
	return cfg, nil
}

type colorConfig struct {
	Type      string            `yaml:"type"`
	Low       string            `yaml:"low"`
	Mid       string            `yaml:"mid"`
	High      string            `yaml:"high"`
	Midpoint  *float64          `yaml:"midpoint"`
	Colors    []string          `yaml:"colors"`
	Values    []float64         `yaml:"values"`
	Named     map[string]string `yaml:"named"`
	Palette   string            `yaml:"palette"`
	Direction int               `yaml:"direction"`
	Option    string            `yaml:"option"`
	Begin     *float64          `yaml:"begin"`
	End       *float64          `yaml:"end"`
	Alpha     *float64          `yaml:"alpha"`
	Bins      int               `yaml:"bins"`
	Limits    []float64         `yaml:"limits"`
	NAValue   string            `yaml:"na_value"`
}

func (c colorConfig) config() scale.ColorConfig {
	return scale.ColorConfig{
		Type: c.Type, Low: c.Low, Mid: c.Mid, High: c.High, Midpoint: c.Midpoint,
		Colors: c.Colors, Values: c.Values, Named: c.Named,
		Palette: c.Palette, Direction: c.Direction,
		Option: c.Option, Begin: c.Begin, End: c.End, Alpha: c.Alpha,
		Bins: c.Bins, Limits: c.Limits, NAValue: c.NAValue,
	}
}

type coordConfig struct {
	Kind   string  `yaml:"kind"`
	Ratio  float64 `yaml:"ratio"`
	Theta  string  `yaml:"theta"`
	XTrans string  `yaml:"x_trans"`
	YTrans string  `yaml:"y_trans"`
}

func loadConfig(r io.Reader) (*chartConfig, error) {
	var cfg chartConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, err
	}
	return &cfg, nil
}

// mapping converts a YAML mapping. Values of the form "=expr" are
// derived expressions and "'lit'" are literals; anything else names a
// column.
func mapping(m map[string]string) (aes.Mapping, error) {
	if m == nil {
		return nil, nil
	}
	loose := make(map[string]any, len(m))
	for k, v := range m {
		switch {
		case strings.HasPrefix(v, "="):
			loose[k] = aes.Derived(v[1:])
		case len(v) >= 2 && strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'"):
			loose[k] = aes.Lit(literal(v[1 : len(v)-1]))
		default:
			loose[k] = v
		}
	}
	return aes.NewMapping(loose)
}

func literal(s string) any {
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		return x
	}
	return s
}

// builder turns the description into a chart builder over t.
func (cfg *chartConfig) builder(t *table.Table) (*chart.Builder, error) {
	m, err := mapping(cfg.Mapping)
	if err != nil {
		return nil, err
	}
	b := chart.NewBuilder(t, m)
	for i, lc := range cfg.Layers {
		s, err := lc.spec()
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		b.Layer(s)
	}
	for name, sc := range cfg.Scales {
		a, err := aes.Parse(name)
		if err != nil {
			return nil, err
		}
		c, err := sc.config(string(a))
		if err != nil {
			return nil, err
		}
		b.Scale(a, c)
	}
	for name, cc := range cfg.Colors {
		a, err := aes.Parse(name)
		if err != nil {
			return nil, err
		}
		b.ColorScale(a, cc.config())
	}
	b.Facet(cfg.Facet)
	b.Coord(chart.Coord{Kind: cfg.Coord.Kind, Ratio: cfg.Coord.Ratio, Theta: cfg.Coord.Theta, XTrans: cfg.Coord.XTrans, YTrans: cfg.Coord.YTrans})

	labels := chart.Labels{Title: cfg.Title}
	for k, v := range cfg.Labels {
		switch k {
		case "title":
			labels.Title = v
		case "subtitle":
			labels.Subtitle = v
		case "caption":
			labels.Caption = v
		case "x":
			labels.X = v
		case "y":
			labels.Y = v
		default:
			if labels.Aes == nil {
				labels.Aes = make(map[string]string)
			}
			labels.Aes[k] = v
		}
	}
	b.Labels(labels)
	if cfg.Theme != nil {
		b.Theme(cfg.Theme)
	}
	for name, g := range cfg.Guides {
		a, err := aes.Parse(name)
		if err != nil {
			return nil, err
		}
		b.Guide(a, g)
	}
	for _, n := range cfg.Notes {
		geom, _ := n["geom"].(string)
		params := make(map[string]any)
		for k, v := range n {
			if k != "geom" {
				params[k] = v
			}
		}
		b.Annotate(geom, params)
	}
	return b, nil
}

func (lc layerConfig) spec() (layer.Spec, error) {
	m, err := mapping(lc.Mapping)
	if err != nil {
		return layer.Spec{}, err
	}
	opts := []layer.Option{
		layer.WithStat(lc.Stat, lc.Params.params()),
		layer.WithPosition(lc.Position, lc.Adjust.params()),
		layer.WithMapping(m),
	}
	if lc.Inherit != nil && !*lc.Inherit {
		opts = append(opts, layer.NoInherit())
	}
	return layer.New(lc.Geom, opts...)
}

// parseLayerFlag parses a -layer flag of the form
//
//	geom=point stat=bin position=stack x=col 'color=my col' bins=10
//
// Keys other than geom, stat, position, and the scalar stat and
// position parameters are aesthetics.
func parseLayerFlag(s string) (layerConfig, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return layerConfig{}, err
	}
	var lc layerConfig
	for _, w := range words {
		k, v, ok := strings.Cut(w, "=")
		if !ok {
			if lc.Geom != "" {
				return lc, fmt.Errorf("expected key=value, got %q", w)
			}
			lc.Geom = w
			continue
		}
		if err := lc.set(k, v); err != nil {
			return lc, fmt.Errorf("%s: %w", k, err)
		}
	}
	if lc.Geom == "" {
		return lc, fmt.Errorf("layer %q has no geom", s)
	}
	return lc, nil
}

func (lc *layerConfig) set(k, v string) error {
	var err error
	atoi := func(dst *int) { *dst, err = strconv.Atoi(v) }
	atof := func(dst *float64) { *dst, err = strconv.ParseFloat(v, 64) }
	switch k {
	case "geom":
		lc.Geom = v
	case "stat":
		lc.Stat = v
	case "position":
		lc.Position = v
	case "inherit":
		b, perr := strconv.ParseBool(v)
		lc.Inherit, err = &b, perr
	case "bins":
		atoi(&lc.Params.Bins)
	case "binwidth":
		atof(&lc.Params.Binwidth)
	case "n":
		atoi(&lc.Params.N)
	case "method":
		lc.Params.Method = v
	case "formula":
		lc.Params.Formula = v
	case "level":
		atof(&lc.Params.Level)
	case "kernel":
		lc.Params.Kernel = v
	case "fun":
		lc.Params.Fun = v
	case "fun_data":
		lc.Params.FunData = v
	case "seed":
		var seed int64
		seed, err = strconv.ParseInt(v, 10, 64)
		lc.Adjust.Seed = &seed
	case "nudge_x":
		atof(&lc.Adjust.NudgeX)
	case "nudge_y":
		atof(&lc.Adjust.NudgeY)
	default:
		if lc.Mapping == nil {
			lc.Mapping = make(map[string]string)
		}
		lc.Mapping[k] = v
	}
	return err
}
