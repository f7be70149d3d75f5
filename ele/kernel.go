// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the hexahedral element kernel: the application of
// the 24x24 elemental stiffness to element vectors, the elemental strain
// energy, and the Jacobi diagonal terms. The 24 slots are packed with nodes
// in tensor order, x varying fastest:
//
//   slot(node (dx,dy,dz), dof d) = 12*dz + 6*dy + 3*dx + d
//
// so that each pair of x-adjacent nodes occupies 6 consecutive slots. With
// block-local variable indices assigned in the same scan order, the four
// y/z edge references of an element each span 6 consecutive DOFs.
package ele

import (
	"github.com/cpmech/gosl/chk"
)

// Kernel applies one elemental stiffness. The matrix is flattened row-major
// into contiguous storage for the inner multiply.
type Kernel struct {
	K [576]float64 // row-major 24x24
}

// NewKernel returns a kernel for the given dense 24x24 stiffness matrix
func NewKernel(kmat [][]float64) (o *Kernel, err error) {
	if len(kmat) != 24 {
		err = chk.Err("stiffness matrix must be 24x24; got %d rows", len(kmat))
		return
	}
	o = new(Kernel)
	for r := 0; r < 24; r++ {
		if len(kmat[r]) != 24 {
			return nil, chk.Err("stiffness matrix must be 24x24; row %d has %d columns", r, len(kmat[r]))
		}
		for c := 0; c < 24; c++ {
			o.K[r*24+c] = kmat[r][c]
		}
	}
	return
}

// Apply computes y = (bvf/100) * phi * K * x
func (o *Kernel) Apply(x, y *[24]float64, bvf byte, phi float64) {
	factor := float64(bvf) / 100.0 * phi
	ct := 0
	for r := 0; r < 24; r++ {
		sum := 0.0
		for c := 0; c < 24; c++ {
			sum += o.K[ct] * x[c]
			ct++
		}
		y[r] = sum * factor
	}
}

// Energy computes the elemental strain energy e = -0.5 * (bvf/100) * xt*K*x.
// The negative sign and halving match the convention used by the strain
// estimate sqrt(2|e| / (V*E*bvf/100)).
func (o *Kernel) Energy(x *[24]float64, bvf byte) float64 {
	e := 0.0
	ct := 0
	for r := 0; r < 24; r++ {
		for c := 0; c < 24; c++ {
			e += o.K[ct] * x[c] * x[r]
			ct++
		}
	}
	return e * float64(bvf) / 100.0 * (-0.5)
}

// Diag returns the scaled diagonal entry K[k,k] * (bvf/100) * phi
func (o *Kernel) Diag(k int, bvf byte, phi float64) float64 {
	return o.K[k*24+k] * float64(bvf) / 100.0 * phi
}
