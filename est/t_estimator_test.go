// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package est

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_est01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("est01. geometric sequence recovers true error")

	// sig_n = siginf - c*rho^n converges linearly with ratio rho
	siginf := 10.0
	c := 4.0
	rho := 0.6
	e := NewStressSeq()
	for n := 0; n < 12; n++ {
		v := siginf - c*math.Pow(rho, float64(n))
		e.AddStressData([]float64{v, 0, 0, 0, 0, 0})
	}
	// true remaining error after sample n: c*rho^n / siginf
	truerr := c * math.Pow(rho, 11) / siginf
	got := e.EstimatedRelativeError()
	chk.Scalar(tst, "estimated rel err", 0.25*truerr, got, truerr)
}

func Test_est02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("est02. edge cases")

	e := NewStressSeq()
	if !math.IsInf(e.EstimatedRelativeError(), 1) {
		tst.Errorf("empty sequence must report +Inf\n")
		return
	}
	e.AddStressData([]float64{1, 0, 0, 0, 0, 0})
	e.AddStressData([]float64{2, 0, 0, 0, 0, 0})
	if !math.IsInf(e.EstimatedRelativeError(), 1) {
		tst.Errorf("two samples must report +Inf\n")
		return
	}

	// stationary sequence has zero error
	e2 := NewStressSeq()
	for n := 0; n < 5; n++ {
		e2.AddStressData([]float64{3, 1, 0, 0, 0, 0})
	}
	chk.Scalar(tst, "stationary", 1e-17, e2.EstimatedRelativeError(), 0)

	// diverging sequence falls back to the raw relative increment
	e3 := NewStressSeq()
	for n := 0; n < 6; n++ {
		e3.AddStressData([]float64{math.Pow(2, float64(n)), 0, 0, 0, 0, 0})
	}
	chk.Scalar(tst, "diverging", 1e-14, e3.EstimatedRelativeError(), 16.0/32.0)
}
