// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/aclements/go-gglayer/diag"
	"github.com/aclements/go-gglayer/render"
)

// kernelDensity is a kernel density estimate of a weighted sample.
type kernelDensity struct {
	xs, ws []float64
	bw     float64
	kernel string
	gauss  *stats.KDE
}

func newKernelDensity(xs, ws []float64, p Params) (*kernelDensity, error) {
	kernel := p.Kernel
	if kernel == "" {
		kernel = "gaussian"
	}
	if _, ok := kernels[kernel]; !ok && kernel != "gaussian" {
		return nil, errorf("unknown density kernel %q", p.Kernel)
	}
	bw, err := bandwidth(xs, p)
	if err != nil {
		return nil, err
	}
	kd := &kernelDensity{xs: xs, ws: ws, bw: bw, kernel: kernel}
	if unweighted(ws) {
		kd.ws = nil
	}
	if kernel == "gaussian" {
		kd.gauss = &stats.KDE{
			Sample:    stats.Sample{Xs: xs, Weights: kd.ws},
			Kernel:    stats.GaussianKernel,
			Bandwidth: bw,
		}
	}
	return kd, nil
}

// bandwidth returns the kernel standard deviation for xs.
func bandwidth(xs []float64, p Params) (float64, error) {
	adjust := orDefault(p.Adjust, 1)
	if adjust <= 0 {
		return 0, errorf("density adjust must be positive, got %v", adjust)
	}
	if p.BW < 0 {
		return 0, errorf("density bandwidth must be positive, got %v", p.BW)
	}
	if p.BW > 0 {
		return p.BW * adjust, nil
	}
	s := stats.Sample{Xs: xs}
	var bw float64
	switch p.BWRule {
	case "", "nrd0":
		// Silverman's rule with the robust spread estimate.
		bw = stats.BandwidthScott(s) * 0.9 / 1.06
	case "nrd":
		bw = stats.BandwidthScott(s)
	case "silverman":
		bw = stats.BandwidthSilverman(s)
	default:
		return 0, errorf("unknown bandwidth rule %q", p.BWRule)
	}
	if !(bw > 0) {
		// The robust spread is zero. Fall back to the standard
		// deviation, then to a fraction of the data's magnitude.
		if sd := s.StdDev(); sd > 0 {
			factor := 1.06
			if p.BWRule == "" || p.BWRule == "nrd0" {
				factor = 0.9
			}
			bw = factor * sd * math.Pow(float64(len(xs)), -0.2)
		} else {
			lo, _ := s.Bounds()
			bw = 0.1 * math.Abs(lo)
			if bw == 0 {
				bw = 1
			}
		}
	}
	return bw * adjust, nil
}

// kernels holds the non-Gaussian kernels, scaled so the bandwidth is
// the kernel's standard deviation. Each maps a distance d and
// bandwidth to a density.
var kernels = map[string]func(d, bw float64) float64{
	"epanechnikov": func(d, bw float64) float64 {
		a := bw * math.Sqrt(5)
		if u := d / a; math.Abs(u) < 1 {
			return 3 / (4 * a) * (1 - u*u)
		}
		return 0
	},
	"rectangular": func(d, bw float64) float64 {
		a := bw * math.Sqrt(3)
		if math.Abs(d) < a {
			return 1 / (2 * a)
		}
		return 0
	},
	"triangular": func(d, bw float64) float64 {
		a := bw * math.Sqrt(6)
		if ad := math.Abs(d); ad < a {
			return (1 - ad/a) / a
		}
		return 0
	},
	"biweight": func(d, bw float64) float64 {
		a := bw * math.Sqrt(7)
		if u := d / a; math.Abs(u) < 1 {
			v := 1 - u*u
			return 15 / (16 * a) * v * v
		}
		return 0
	},
	"cosine": func(d, bw float64) float64 {
		a := bw / math.Sqrt(1.0/3-2/(math.Pi*math.Pi))
		if math.Abs(d) < a {
			return (1 + math.Cos(math.Pi*d/a)) / (2 * a)
		}
		return 0
	},
	"optcosine": func(d, bw float64) float64 {
		a := bw / math.Sqrt(1-8/(math.Pi*math.Pi))
		if math.Abs(d) < a {
			return math.Pi / 4 * math.Cos(math.Pi*d/(2*a)) / a
		}
		return 0
	},
}

func (kd *kernelDensity) pdf(x float64) float64 {
	if kd.gauss != nil {
		return kd.gauss.PDF(x)
	}
	k := kernels[kd.kernel]
	sum, wsum := 0.0, 0.0
	for i, xi := range kd.xs {
		w := 1.0
		if kd.ws != nil {
			w = kd.ws[i]
		}
		sum += w * k(x-xi, kd.bw)
		wsum += w
	}
	return sum / wsum
}

func (p Params) densityRange(lo, hi float64) (float64, float64) {
	if p.From != nil {
		lo = *p.From
	}
	if p.To != nil {
		hi = *p.To
	}
	return lo, hi
}

// density estimates the density of x for each series at N points. The
// evaluation range is the x range of all series, or each series' own
// range with Trim. Series with fewer than two points are dropped.
func density(p Params, rows []render.Record) ([]render.Record, error) {
	n, err := p.n(512)
	if err != nil {
		return nil, err
	}
	alo, ahi, ok := bounds(rows, "x")
	if !ok {
		return nil, nil
	}
	var out []render.Record
	for _, g := range splitGroups(rows, groupKey) {
		xs, ws := floats(g.rows, "x")
		if len(xs) < 2 {
			diag.Logger().Warn("density: dropping group with fewer than two points", "group", g.key)
			continue
		}
		kd, err := newKernelDensity(xs, ws, p)
		if err != nil {
			return nil, err
		}
		lo, hi := alo, ahi
		if p.Trim {
			lo, hi = stats.Bounds(xs)
		}
		lo, hi = p.densityRange(lo, hi)
		eval := vec.Linspace(lo, hi, n)
		if n == 1 {
			eval = []float64{lo}
		}
		ds := vec.Map(kd.pdf, eval)
		_, dmax := stats.Bounds(ds)
		total := vec.Sum(ws)
		for i, x := range eval {
			r := synth(g.rows)
			r.X, r.Y = x, ds[i]
			r.SetMeta("density", ds[i])
			r.SetMeta("scaled", ratio(ds[i], dmax))
			r.SetMeta("ndensity", ratio(ds[i], dmax))
			r.SetMeta("count", ds[i]*total)
			r.SetMeta("n", len(xs))
			out = append(out, r)
		}
	}
	return out, nil
}

// ydensity estimates the density of y within each x category, for
// violins. Each output record carries "violinwidth", the density
// scaled according to Params.Scale.
func ydensity(p Params, rows []render.Record) ([]render.Record, error) {
	n, err := p.n(512)
	if err != nil {
		return nil, err
	}
	width := orDefault(p.Width, 0.9)
	scale := p.Scale
	switch scale {
	case "":
		scale = "area"
	case "area", "count", "width":
	default:
		return nil, errorf("unknown violin scale %q", p.Scale)
	}

	type violin struct {
		recs []render.Record
		dmax float64
		n    int
	}
	var vs []violin
	gmax, nmax := 0.0, 0
	key := func(r *render.Record) string { return render.Key(r.X) + "\x01" + groupKey(r) }
	for _, g := range splitGroups(rows, key) {
		ys, ws := floats(g.rows, "y")
		if len(ys) < 2 {
			continue
		}
		kd, err := newKernelDensity(ys, ws, p)
		if err != nil {
			return nil, err
		}
		lo, hi := stats.Bounds(ys)
		lo, hi = p.densityRange(lo, hi)
		eval := vec.Linspace(lo, hi, n)
		if n == 1 {
			eval = []float64{lo}
		}
		v := violin{n: len(ys)}
		for _, y := range eval {
			d := kd.pdf(y)
			r := synth(g.rows)
			r.X, r.Y = g.rows[0].X, y
			r.Width = width
			r.SetMeta("density", d)
			r.SetMeta("n", len(ys))
			r.SetMeta("width", width)
			v.recs = append(v.recs, r)
			v.dmax = math.Max(v.dmax, d)
		}
		gmax = math.Max(gmax, v.dmax)
		nmax = max(nmax, v.n)
		vs = append(vs, v)
	}

	var out []render.Record
	for _, v := range vs {
		for i := range v.recs {
			d, _ := v.recs[i].MetaFloat("density")
			var vw float64
			switch scale {
			case "area":
				vw = ratio(d, gmax)
			case "count":
				vw = ratio(d, v.dmax) * float64(v.n) / float64(nmax)
			case "width":
				vw = ratio(d, v.dmax)
			}
			v.recs[i].SetMeta("scaled", ratio(d, v.dmax))
			v.recs[i].SetMeta("violinwidth", vw)
		}
		out = append(out, v.recs...)
	}
	return out, nil
}
