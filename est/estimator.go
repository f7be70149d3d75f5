// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package est implements convergence estimation from the sequence of
// macroscopic stress tensors produced by the iterative solver
package est

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Estimator consumes the per-iteration macroscopic stress and reports an
// estimate of the relative error of the latest value
type Estimator interface {
	AddStressData(sig []float64)
	EstimatedRelativeError() float64
}

// StressSeq estimates the relative error by modelling the tail of the
// stress sequence as linearly convergent: the sup-norm increments
// d_n = |sig_n - sig_(n-1)| are fitted as log d_n ~ a + n*log(rho) over a
// sliding window, and the remaining error is extrapolated as the geometric
// tail d_n*rho/(1-rho).
type StressSeq struct {
	Window int
	hist   [][]float64
}

// NewStressSeq returns an estimator with the default 10-sample window
func NewStressSeq() *StressSeq {
	return &StressSeq{Window: 10}
}

// AddStressData appends one iteration's reduced stress 6-vector
func (o *StressSeq) AddStressData(sig []float64) {
	s := make([]float64, len(sig))
	copy(s, sig)
	o.hist = append(o.hist, s)
}

// NumData returns the number of stress samples seen so far
func (o *StressSeq) NumData() int {
	return len(o.hist)
}

// EstimatedRelativeError returns the estimated relative error of the most
// recent stress. With fewer than 3 samples the sequence has no tail to fit
// and the estimate is +Inf.
func (o *StressSeq) EstimatedRelativeError() float64 {
	n := len(o.hist)
	if n < 3 {
		return math.Inf(1)
	}

	den := supNorm(o.hist[n-1])
	first := n - o.Window
	if first < 1 {
		first = 1
	}
	dlast := supNormDiff(o.hist[n-1], o.hist[n-2])
	if dlast == 0 {
		return 0
	}
	if den == 0 {
		return math.Inf(1)
	}

	// fit log-increments over the window
	var xs, ys []float64
	for i := first; i < n; i++ {
		d := supNormDiff(o.hist[i], o.hist[i-1])
		if d > 0 {
			xs = append(xs, float64(i))
			ys = append(ys, math.Log(d))
		}
	}
	if len(xs) < 2 {
		return dlast / den
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	rho := math.Exp(slope)
	if math.IsNaN(rho) || rho >= 1 {
		return dlast / den
	}
	return dlast * rho / (1.0 - rho) / den
}

func supNorm(a []float64) (r float64) {
	for _, v := range a {
		if math.Abs(v) > r {
			r = math.Abs(v)
		}
	}
	return
}

func supNormDiff(a, b []float64) (r float64) {
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > r {
			r = d
		}
	}
	return
}
