// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements constitutive adjustments for solid elements
package solid

// Adjuster maps an element's accumulated strain to a stiffness scaling
// factor in (0,1]. A nil Adjuster means no adjustment (factor 1).
type Adjuster interface {
	Compute(strain float64) float64
}

// LinearSoftening weakens elements linearly with strain from zero, reaching
// the floor of 0.05 at twice the yield strain:
//
//   phi(eps) = 1 - 0.95*eps/(2*EpsYield)   for eps < 2*EpsYield
//   phi(eps) = 0.05                        otherwise
type LinearSoftening struct {
	EpsYield float64
}

// Compute returns the stiffness scaling factor for the given strain
func (o *LinearSoftening) Compute(eps float64) float64 {
	if eps < 2.0*o.EpsYield {
		return 1.0 - eps/(2.0*o.EpsYield)*0.95
	}
	return 0.05
}
