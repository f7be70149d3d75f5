// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements closed-form solutions for checking numerical results
package ana

// IsotropicStress computes the Voigt stress (11,22,33,12,13,23) produced by
// a uniform strain field in an isotropic elastic medium:
//
//   sig = lam*tr(eps)*I + 2*mu*eps
func IsotropicStress(E, nu float64, eps [3][3]float64) (sig []float64) {
	lam := E * nu / ((1.0 + nu) * (1.0 - 2.0*nu))
	mu := E / (2.0 * (1.0 + nu))
	tr := eps[0][0] + eps[1][1] + eps[2][2]
	sig = make([]float64, 6)
	sig[0] = lam*tr + 2.0*mu*eps[0][0]
	sig[1] = lam*tr + 2.0*mu*eps[1][1]
	sig[2] = lam*tr + 2.0*mu*eps[2][2]
	sig[3] = 2.0 * mu * eps[0][1]
	sig[4] = 2.0 * mu * eps[0][2]
	sig[5] = 2.0 * mu * eps[1][2]
	return
}

// UniaxialStress returns the axial stress of a specimen free to contract
// laterally: sig = E*eps
func UniaxialStress(E, eps float64) float64 {
	return E * eps
}
