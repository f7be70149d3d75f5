// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Hex8Stiffness computes the 24x24 stiffness matrix of an 8-node hexahedral
// element of size hx x hy x hz with isotropic elastic material (E, nu),
// using 2x2x2 Gauss quadrature over trilinear shape functions. Rows and
// columns follow the kernel packing (nodes in tensor order, x fastest).
func Hex8Stiffness(E, nu, hx, hy, hz float64) (kmat [][]float64, err error) {

	// check
	if E <= 0 {
		return nil, chk.Err("Young's modulus must be positive; got %g", E)
	}
	if nu <= -1 || nu >= 0.5 {
		return nil, chk.Err("Poisson's ratio must be in (-1,0.5); got %g", nu)
	}
	if hx <= 0 || hy <= 0 || hz <= 0 {
		return nil, chk.Err("element dimensions must be positive; got (%g,%g,%g)", hx, hy, hz)
	}

	// isotropic elastic moduli
	lam := E * nu / ((1.0 + nu) * (1.0 - 2.0*nu))
	mu := E / (2.0 * (1.0 + nu))

	// D matrix in Voigt order (11,22,33,12,13,23) with engineering shears
	D := la.MatAlloc(6, 6)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = lam
		}
		D[i][i] = lam + 2.0*mu
		D[3+i][3+i] = mu
	}

	// node natural coordinates in tensor order, x fastest
	var xi [8][3]float64
	for n := 0; n < 8; n++ {
		xi[n][0] = float64(2*(n&1) - 1)
		xi[n][1] = float64(2*((n>>1)&1) - 1)
		xi[n][2] = float64(2*((n>>2)&1) - 1)
	}

	// quadrature
	kmat = la.MatAlloc(24, 24)
	B := la.MatAlloc(6, 24)
	g := 1.0 / math.Sqrt(3.0)
	detJw := hx * hy * hz / 8.0
	for gp := 0; gp < 8; gp++ {
		p := [3]float64{g * xi[gp][0], g * xi[gp][1], g * xi[gp][2]}

		// shape function gradients in physical coordinates
		for n := 0; n < 8; n++ {
			dNdx := xi[n][0] * (1.0 + xi[n][1]*p[1]) * (1.0 + xi[n][2]*p[2]) / 8.0 * 2.0 / hx
			dNdy := xi[n][1] * (1.0 + xi[n][0]*p[0]) * (1.0 + xi[n][2]*p[2]) / 8.0 * 2.0 / hy
			dNdz := xi[n][2] * (1.0 + xi[n][0]*p[0]) * (1.0 + xi[n][1]*p[1]) / 8.0 * 2.0 / hz
			B[0][3*n] = dNdx
			B[1][3*n+1] = dNdy
			B[2][3*n+2] = dNdz
			B[3][3*n], B[3][3*n+1] = dNdy, dNdx
			B[4][3*n], B[4][3*n+2] = dNdz, dNdx
			B[5][3*n+1], B[5][3*n+2] = dNdz, dNdy
		}

		// kmat += Bt * D * B * detJ * w
		for r := 0; r < 24; r++ {
			for c := 0; c < 24; c++ {
				sum := 0.0
				for a := 0; a < 6; a++ {
					for b := 0; b < 6; b++ {
						sum += B[a][r] * D[a][b] * B[b][c]
					}
				}
				kmat[r][c] += sum * detJw
			}
		}
	}
	return
}
