// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_softening01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("softening01. linear softening profile")

	adj := &LinearSoftening{EpsYield: 0.01}

	chk.Scalar(tst, "phi(0)", 1e-15, adj.Compute(0), 1.0)
	chk.Scalar(tst, "phi(eps_yield)", 1e-15, adj.Compute(0.01), 1.0-0.475)
	chk.Scalar(tst, "phi(2*eps_yield)", 1e-15, adj.Compute(0.02), 0.05)
	chk.Scalar(tst, "phi floor", 1e-15, adj.Compute(1.0), 0.05)

	// monotone nonincreasing
	prev := adj.Compute(0)
	for i := 1; i <= 100; i++ {
		phi := adj.Compute(float64(i) * 0.0005)
		if phi > prev+1e-15 {
			tst.Errorf("phi is not monotone at eps=%g: %g > %g\n", float64(i)*0.0005, phi, prev)
			return
		}
		if phi < 0.05-1e-15 || phi > 1+1e-15 {
			tst.Errorf("phi out of range at eps=%g: %g\n", float64(i)*0.0005, phi)
			return
		}
		prev = phi
	}
}
