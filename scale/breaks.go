// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"math"
	"strconv"
	"time"

	mscale "github.com/aclements/go-moremath/scale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const defaultBreaks = 5

// continuousBreaks picks at most cfg.Breaks "nice" break values in
// data space that fall inside the trained domain.
func (s *Trained) continuousBreaks(cfg Config) ([]float64, error) {
	lo, hi := s.Domain[0], s.Domain[1]
	inside := func(x float64) bool {
		t := s.Transform.Forward(x)
		eps := 1e-9 * (hi - lo)
		return t >= lo-eps && t <= hi+eps
	}
	var out []float64
	if cfg.BreakValues != nil {
		for _, x := range cfg.BreakValues {
			if inside(x) {
				out = append(out, x)
			}
		}
		return out, nil
	}

	n := cfg.Breaks
	if n < 0 {
		return nil, fmt.Errorf("break count must be non-negative, got %d", n)
	}
	if n == 0 {
		n = defaultBreaks
	}
	a, b := s.Transform.Inverse(lo), s.Transform.Inverse(hi)
	if a > b {
		a, b = b, a
	}
	opts := mscale.TickOptions{Max: n}
	var major []float64
	if s.Transform.Name == Log10.Name && a > 0 {
		l, err := mscale.NewLog(a, b, 10)
		if err != nil {
			return nil, err
		}
		major, _ = l.Ticks(opts)
	} else {
		major, _ = mscale.Linear{Min: a, Max: b}.Ticks(opts)
	}
	for _, x := range major {
		if inside(x) {
			out = append(out, x)
		}
	}
	return out, nil
}

// formatLabels labels breaks in the given style.
func formatLabels(breaks []float64, style string, tr Transform) ([]string, error) {
	var f func(float64) string
	p := message.NewPrinter(language.English)
	switch style {
	case "":
		if tr.Name == Date.Name {
			f = func(x float64) string {
				sec, frac := math.Modf(x)
				return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format("2006-01-02")
			}
		} else {
			f = func(x float64) string {
				return strconv.FormatFloat(x, 'g', 10, 64)
			}
		}
	case "comma":
		f = func(x float64) string { return p.Sprint(number.Decimal(x)) }
	case "percent":
		f = func(x float64) string { return p.Sprint(number.Percent(x)) }
	default:
		return nil, fmt.Errorf("unknown label style %q", style)
	}
	out := make([]string, len(breaks))
	for i, x := range breaks {
		out[i] = f(x)
	}
	return out, nil
}
