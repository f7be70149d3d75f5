// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_hooke01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hooke01. isotropic stress")

	E, nu := 200.0, 0.25
	var eps [3][3]float64
	eps[0][0] = 0.01

	sig := IsotropicStress(E, nu, eps)
	lam := E * nu / ((1 + nu) * (1 - 2*nu))
	mu := E / (2 * (1 + nu))
	chk.Scalar(tst, "sig11", 1e-12, sig[0], (lam+2*mu)*0.01)
	chk.Scalar(tst, "sig22", 1e-12, sig[1], lam*0.01)
	chk.Scalar(tst, "sig33", 1e-12, sig[2], lam*0.01)
	chk.Vector(tst, "shear", 1e-15, sig[3:], []float64{0, 0, 0})

	// pure shear
	var gam [3][3]float64
	gam[0][1] = 0.005
	sig2 := IsotropicStress(E, nu, gam)
	chk.Scalar(tst, "sig12", 1e-12, sig2[3], 2*mu*0.005)
	chk.Scalar(tst, "sig11 zero", 1e-15, sig2[0], 0)
}
