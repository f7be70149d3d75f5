// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/microct/vofem/grid"
)

// Stress returns the volume-averaged macroscopic stress as a Voigt
// 6-vector (11,22,33,12,13,23), already normalised by the total domain
// volume. Repeated calls without iterating return the same values.
func (o *Solver) Stress() (sig []float64) {
	sig = make([]float64, 6)
	if o.BVF == nil || len(o.blocks) == 0 {
		return
	}
	den := float64(o.BVF.N1) * float64(o.BVF.N2) * float64(o.BVF.N3) *
		o.Resolution[0] * o.Resolution[1] * o.Resolution[2]
	for i := range o.ppB {
		for j := 0; j < 6; j++ {
			sig[j] += o.ppB[i].Stress[j]
		}
	}
	for j := 0; j < 6; j++ {
		sig[j] /= den
	}
	return
}

// Displacements assembles the nodal displacement field from the blocks as
// a sparse (3,N1+1,N2+1,N3+1) array over the active vertices
func (o *Solver) Displacements() (u *grid.Sparse4) {
	u = grid.NewSparse4(3, o.BVF.N1+1, o.BVF.N2+1, o.BVF.N3+1)
	o.gatherVertexField(u, (*Block).Displacement)
	return
}

// Forces assembles the nodal reaction forces (the residual at fixed DOFs)
// as a sparse (3,N1+1,N2+1,N3+1) array over the active vertices
func (o *Solver) Forces() (f *grid.Sparse4) {
	f = grid.NewSparse4(3, o.BVF.N1+1, o.BVF.N2+1, o.BVF.N3+1)
	o.gatherVertexField(f, (*Block).Force)
	return
}

func (o *Solver) gatherVertexField(out *grid.Sparse4, value func(b *Block, xx, yy, zz, dd int) float64) {
	for _, b := range o.blocks {
		x0, y0, z0 := b.Xpos, b.Ypos, b.Zpos
		for kk := 0; kk < b.Nz; kk++ {
			for jj := 0; jj < b.Ny; jj++ {
				for ii := 0; ii < b.Nx; ii++ {
					if !grid.IsVertex(o.BVF, x0+ii, y0+jj, z0+kk) {
						continue
					}
					for dd := 0; dd < 3; dd++ {
						out.Set(dd, x0+ii, y0+jj, z0+kk, value(b, ii+1, jj+1, kk+1, dd))
					}
				}
			}
		}
	}
}

// Energy assembles the per-element strain energies from the blocks as a
// sparse (1,N1,N2,N3) array over the elements
func (o *Solver) Energy() (en *grid.Sparse4) {
	en = grid.NewSparse4(1, o.BVF.N1, o.BVF.N2, o.BVF.N3)
	for _, b := range o.blocks {
		em := b.EnergyMap()
		for kk := 0; kk < b.Nz+1; kk++ {
			for jj := 0; jj < b.Ny+1; jj++ {
				for ii := 0; ii < b.Nx+1; ii++ {
					wx, wy, wz := b.Xpos-1+ii, b.Ypos-1+jj, b.Zpos-1+kk
					if grid.IsElement(o.BVF, wx, wy, wz) {
						en.Set(0, wx, wy, wz, em.Value(0, ii, jj, kk))
					}
				}
			}
		}
	}
	return
}
