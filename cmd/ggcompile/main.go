// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ggcompile compiles a chart description against a CSV table
// and prints the compiled layer data and trained scales.
//
// Usage:
//
//	ggcompile [flags] [data.csv]
//
// The chart comes from a YAML file given by -chart, from -layer flags,
// or both. Each -layer flag is a shell-quoted list of words: an
// optional leading geometry name, then key=value pairs naming the
// stat, position, a few common parameters, and aesthetic mappings:
//
//	ggcompile -layer 'histogram x=carat bins=20' diamonds.csv
//	ggcompile -map 'x=cyl y=mpg' -layer 'boxplot' -layer 'point position=jitter seed=1' mtcars.csv
//
// A mapping value starting with "=" is a derived expression, as in
// 'y=log10(price)'. A value in single quotes is a literal.
//
// With -svg, ggcompile also writes a rough preview of the compiled
// chart.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-gglayer/aes"
	"github.com/aclements/go-gglayer/chart"
	"github.com/aclements/go-gglayer/diag"
	"github.com/aclements/go-gglayer/scale"
)

type layerFlags []string

func (l *layerFlags) String() string { return strings.Join(*l, "; ") }

func (l *layerFlags) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func main() {
	log.SetPrefix("ggcompile: ")
	log.SetFlags(0)

	var (
		flagChart  = flag.String("chart", "", "read the chart description from YAML `file`")
		flagMap    = flag.String("map", "", "plot-level `mapping`, as key=value words")
		flagOut    = flag.String("o", "", "write output to `file` (default: stdout)")
		flagSVG    = flag.String("svg", "", "write an SVG preview to `file`")
		flagV      = flag.Bool("v", false, "log pipeline diagnostics to stderr")
		flagLayers layerFlags
	)
	flag.Var(&flagLayers, "layer", "add a layer `spec` (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [data.csv]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *flagV {
		diag.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	// Read the table.
	in := os.Stdin
	if flag.NArg() == 1 && flag.Arg(0) != "-" {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}
	tab, err := readCSV(in)
	if err != nil {
		log.Fatal(err)
	}

	// Assemble the chart description.
	cfg := new(chartConfig)
	if *flagChart != "" {
		f, err := os.Open(*flagChart)
		if err != nil {
			log.Fatal(err)
		}
		cfg, err = loadConfig(f)
		f.Close()
		if err != nil {
			log.Fatalf("%s: %v", *flagChart, err)
		}
	}
	if err := cfg.addFlags(*flagMap, flagLayers); err != nil {
		log.Fatal(err)
	}
	if len(cfg.Layers) == 0 {
		log.Fatal("no layers; use -chart or -layer")
	}

	c, err := compile(cfg, tab)
	if err != nil {
		log.Fatal(err)
	}

	out := os.Stdout
	if *flagOut != "" {
		out, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()
	}
	if err := printChart(out, c); err != nil {
		log.Fatal(err)
	}

	if *flagSVG != "" {
		f, err := os.Create(*flagSVG)
		if err != nil {
			log.Fatal(err)
		}
		if err := writePreview(f, c); err != nil {
			log.Fatal(err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
	}
}

// addFlags merges the -map and -layer flags into cfg.
func (cfg *chartConfig) addFlags(m string, layers []string) error {
	if m != "" {
		lc, err := parseLayerFlag("_ " + m)
		if err != nil {
			return fmt.Errorf("-map: %w", err)
		}
		if cfg.Mapping == nil {
			cfg.Mapping = make(map[string]string)
		}
		for k, v := range lc.Mapping {
			cfg.Mapping[k] = v
		}
	}
	for _, l := range layers {
		lc, err := parseLayerFlag(l)
		if err != nil {
			return fmt.Errorf("-layer %q: %w", l, err)
		}
		cfg.Layers = append(cfg.Layers, lc)
	}
	return nil
}

func compile(cfg *chartConfig, tab *table.Table) (*chart.Chart, error) {
	b, err := cfg.builder(tab)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// printChart prints each compiled layer as a table, then a summary of
// the trained scales.
func printChart(w io.Writer, c *chart.Chart) error {
	for i, l := range c.Layers() {
		fmt.Fprintf(w, "# layer %d: %s (stat %s, position %s)\n", i, l.Spec.Geom, l.Spec.EffectiveStat().Kind, l.Spec.EffectivePosition().Kind)
		if len(l.Records) == 0 {
			fmt.Fprintf(w, "(no records)\n\n")
			continue
		}
		table.Fprint(w, recordTable(l))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "# scales\n")
	for _, a := range c.ScaledAes() {
		if s, ok := c.Scale(a); ok {
			switch s.Kind {
			case scale.Continuous:
				fmt.Fprintf(w, "%s: continuous %s [%g, %g] breaks %s\n", a, s.Transform.Name, s.Domain[0], s.Domain[1], strings.Join(s.Labels, " "))
			default:
				fmt.Fprintf(w, "%s: discrete %v\n", a, s.Levels)
			}
			continue
		}
		cs, _ := c.ColorScale(a)
		if cs.Continuous {
			fmt.Fprintf(w, "%s: %s [%g, %g] %s..%s\n", a, cs.Type, cs.Domain[0], cs.Domain[1], cs.ColorFor(cs.Domain[0]), cs.ColorFor(cs.Domain[1]))
			continue
		}
		var entries []string
		for _, l := range cs.Levels {
			entries = append(entries, fmt.Sprintf("%v=%s", l, cs.ColorFor(l)))
		}
		fmt.Fprintf(w, "%s: %s %s\n", a, cs.Type, strings.Join(entries, " "))
	}
	if ps := c.Panels(); len(ps) > 1 {
		fmt.Fprintf(w, "# panels\n")
		for _, p := range ps {
			fmt.Fprintf(w, "%d (%d,%d): %v\n", p.Index, p.Row, p.Col, p.Values)
		}
	}
	return nil
}

// recordTable converts a compiled layer to a table with one column per
// populated aesthetic and offset, plus panel, source row, and one
// "meta:" column per metadata key.
func recordTable(l chart.Layer) *table.Table {
	rs := l.Records
	tab := new(table.Builder)
	for _, a := range aes.All {
		col := make([]string, len(rs))
		used := false
		for i := range rs {
			if v := rs[i].Get(string(a)); v != nil {
				col[i] = fmt.Sprint(v)
				used = true
			}
		}
		if used {
			tab.Add(string(a), col)
		}
	}

	offsets := func(name string, get func(i int) float64) {
		col := make([]float64, len(rs))
		used := false
		for i := range rs {
			col[i] = get(i)
			used = used || col[i] != 0
		}
		if used {
			tab.Add(name, col)
		}
	}
	offsets("xoffset", func(i int) float64 { return rs[i].XOffset })
	offsets("yoffset", func(i int) float64 { return rs[i].YOffset })

	panels := make([]int, len(rs))
	rows := make([]int, len(rs))
	meta := make(map[string]bool)
	var keys []string
	for i := range rs {
		panels[i], rows[i] = rs[i].Panel, rs[i].Row
		for _, k := range rs[i].MetaKeys() {
			if !meta[k] {
				meta[k] = true
				keys = append(keys, k)
			}
		}
	}
	tab.Add("panel", panels).Add("row", rows)
	for _, k := range keys {
		col := make([]string, len(rs))
		for i := range rs {
			if v, ok := rs[i].Meta[k]; ok {
				col[i] = fmt.Sprint(v)
			}
		}
		tab.Add("meta:"+k, col)
	}
	return tab.Done()
}
