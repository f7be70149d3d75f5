// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/microct/vofem/grid"
)

// SetupParams gathers the slab data a block needs to initialise itself.
// The slabs use block-local coordinates: index 0 corresponds to world
// position min-1, so the padding ring owned by neighbours is included.
type SetupParams struct {

	// input
	UsePreconditioner bool         // build the Jacobi diagonal
	Res               [3]float64   // voxel resolution
	Nx, Ny, Nz        int          // owned extents
	Xpos, Ypos, Zpos  int          // world position of the owned region
	Bvf               *grid.Byte3  // (Nx+1,Ny+1,Nz+1) local volume fraction slab
	Fixed             *grid.Byte4  // (Nx+2,Ny+2,Nz+2,3) Dirichlet mask slab
	X0                *grid.Float4 // (Nx+2,Ny+2,Nz+2,3) initial displacement slab
	Kmat              [][]float64  // 24x24 elemental stiffness
	YoungsModulus     float64      // for strain estimation only
	VoxelVolume       float64      // for strain estimation only

	// output
	Rnorm2            float64      // <r,r> over owned free DOFs after setup
	POnTopInner       *grid.Slice2 // p at the top inner-interface layer
	POnBottomInner    *grid.Slice2 // p at the bottom inner-interface layer
}

// StepAParams carries the neighbour interface data into step A and the
// partial inner products out of it
type StepAParams struct {

	// input
	POnTopOuter    *grid.Slice2 // neighbour p for the top padding ring; may be nil
	POnBottomOuter *grid.Slice2 // neighbour p for the bottom padding ring; may be nil

	// output
	Rz, RAp, PAp, ApAp float64 // partial inner products over owned free DOFs
}

// StepBParams carries the global CG scalars into step B and the update
// products, partial stress and fresh interface slices out of it
type StepBParams struct {

	// input
	Alpha, Beta float64

	// output
	Rr             float64      // <r,r> over owned free DOFs after the update
	BbBb           float64      // <r,r> over owned fixed DOFs (reaction norm squared)
	Stress         [6]float64   // partial macroscopic stress (Voigt order)
	POnTopInner    *grid.Slice2 // updated p at the top inner-interface layer
	POnBottomInner *grid.Slice2 // updated p at the bottom inner-interface layer
}

// BlockInfo records a block's z-range and its latest published interface
// slices; the coordinator stages them into the neighbours' StepAParams
type BlockInfo struct {
	Zmin, Zmax     int
	POnTopInner    *grid.Slice2
	POnBottomInner *grid.Slice2
}
