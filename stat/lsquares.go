// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"errors"
	"math"

	"github.com/gonum/matrix/mat64"
)

// A polyFit is a weighted least squares polynomial fit.
type polyFit struct {
	coef []float64

	// inv is (𝐗ᵀ𝐖𝐗)⁻¹, the unscaled covariance of the
	// coefficients.
	inv *mat64.Dense

	// rss is the weighted residual sum of squares and df the
	// residual degrees of freedom.
	rss float64
	df  int
}

var errSingular = errors.New("singular design matrix")

// fitPoly computes the least squares polynomial of the given degree
// through (xs[i], ys[i]), weighting the squared residuals by weights
// if it is non-nil.
func fitPoly(xs, ys, weights []float64, degree int) (*polyFit, error) {
	// The coefficients Β̂ solve the normal equations
	//
	//    (𝐗ᵀ𝐖𝐗)Β̂ = 𝐗ᵀ𝐖𝐲
	//
	// We keep the inverse of the left side for standard errors.
	p := degree + 1
	n := len(xs)
	if n < p {
		return nil, errSingular
	}

	xTVals := make([]float64, p*n)
	for i, x := range xs {
		v := 1.0
		for j := 0; j < p; j++ {
			xTVals[j*n+i] = v
			v *= x
		}
	}
	XT := mat64.NewDense(p, n, xTVals)
	X := XT.T()

	XTW := XT
	if weights != nil {
		// 𝐖 is diagonal, so scale the columns of 𝐗ᵀ directly.
		XTW = mat64.DenseCopyOf(XT)
		WDiag := mat64.NewVector(n, weights)
		for row := 0; row < p; row++ {
			rowView := XTW.RowView(row)
			rowView.MulElemVec(rowView, WDiag)
		}
	}

	lhs := mat64.NewDense(p, p, nil)
	lhs.Mul(XTW, X)
	inv := mat64.NewDense(p, p, nil)
	if err := inv.Inverse(lhs); err != nil {
		return nil, errSingular
	}

	rhs := mat64.NewVector(p, nil)
	rhs.MulVec(XTW, mat64.NewVector(n, ys))
	BVals := make([]float64, p)
	B := mat64.NewVector(p, BVals)
	B.MulVec(inv, rhs)
	for _, b := range BVals {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return nil, errSingular
		}
	}

	f := &polyFit{coef: BVals, inv: inv, df: n - p}
	for i, x := range xs {
		r := ys[i] - f.eval(x)
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		f.rss += w * r * r
	}
	return f, nil
}

func (f *polyFit) eval(x float64) float64 {
	y := 0.0
	for i := len(f.coef) - 1; i >= 0; i-- {
		y = y*x + f.coef[i]
	}
	return y
}

// leverage returns 𝐱₀ᵀ(𝐗ᵀ𝐖𝐗)⁻¹𝐱₀ for 𝐱₀ = (1, x, x², ...).
func (f *polyFit) leverage(x float64) float64 {
	p := len(f.coef)
	x0 := make([]float64, p)
	v := 1.0
	for i := range x0 {
		x0[i] = v
		v *= x
	}
	h := 0.0
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			h += x0[i] * f.inv.At(i, j) * x0[j]
		}
	}
	return h
}
