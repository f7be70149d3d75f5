// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the parallel block solver for linear elasticity on
// voxel grids: preconditioned conjugate gradients with the domain split
// into z-slabs that exchange one interface layer of the search direction
// per iteration
package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"golang.org/x/sync/errgroup"

	"github.com/microct/vofem/est"
	"github.com/microct/vofem/grid"
	"github.com/microct/vofem/inp"
	"github.com/microct/vofem/mdl/solid"
)

// Solver coordinates the blocks: it decomposes the grid along z, drives the
// two-phase iterations, reduces the partial inner products into the global
// CG scalars and watches the stress sequence for convergence
type Solver struct {

	// configuration
	Epsilon              float64      // convergence threshold on the estimated relative stress error
	MaxIterations        int          // iteration budget; 0 means unbounded
	Nthreads             int          // number of worker threads
	UsePreconditioner    bool         // use the Jacobi diagonal
	StiffnessMatrix      [][]float64  // 24x24 elemental stiffness
	YoungsModulus        float64      // for strain estimation only
	VoxelVolume          float64      // for strain estimation only
	Resolution           [3]float64   // voxel resolution hx,hy,hz
	BVF                  *grid.Byte3  // (N1,N2,N3) volume fraction map
	FixedVariables       *grid.Sparse4 // (3,N1+1,N2+1,N3+1) Dirichlet mask
	InitialDisplacements *grid.Sparse4 // (3,N1+1,N2+1,N3+1) initial/imposed field
	ErrEst               est.Estimator // stress-sequence convergence oracle
	Verbose              bool

	// state
	blocks []*Block
	infos  []BlockInfo
	ppA    []StepAParams
	ppB    []StepBParams
	nit    int
	adj    solid.Adjuster
}

// NewSolver returns a solver with default settings
func NewSolver() (o *Solver) {
	o = new(Solver)
	o.Epsilon = 0.001
	o.Nthreads = 1
	o.YoungsModulus = 1
	o.VoxelVolume = 1
	o.Resolution = [3]float64{1, 1, 1}
	return
}

// NumIterations returns the number of iterations run so far
func (o *Solver) NumIterations() int {
	return o.nit
}

// ErrorEstimator returns the estimator consuming the stress sequence
func (o *Solver) ErrorEstimator() est.Estimator {
	return o.ErrEst
}

// SetFixedVariables builds the Dirichlet mask from the macroscopic strain
// descriptor: every active vertex on face f gets direction d fixed iff
// Restrictions[f][d] == 1. Returns the number of elements in the grid.
func (o *Solver) SetFixedVariables(ms *inp.MacroStrain) (nelem int) {
	n1, n2, n3 := o.BVF.N1, o.BVF.N2, o.BVF.N3
	o.FixedVariables = grid.NewSparse4(3, n1+1, n2+1, n3+1)
	for i3 := 0; i3 < n3+1; i3++ {
		for i2 := 0; i2 < n2+1; i2++ {
			for i1 := 0; i1 < n1+1; i1++ {
				if !grid.IsVertex(o.BVF, i1, i2, i3) {
					continue
				}
				var fix [3]bool
				onFace := [3]bool{i1 == 0 || i1 == n1, i2 == 0 || i2 == n2, i3 == 0 || i3 == n3}
				for f := 0; f < 3; f++ {
					if onFace[f] {
						for d := 0; d < 3; d++ {
							if ms.Restrictions[f][d] == 1 {
								fix[d] = true
							}
						}
					}
				}
				for d := 0; d < 3; d++ {
					if fix[d] {
						o.FixedVariables.Set(d, i1, i2, i3, 1)
					}
				}
			}
		}
	}
	for i3 := 0; i3 < n3; i3++ {
		for i2 := 0; i2 < n2; i2++ {
			for i1 := 0; i1 < n1; i1++ {
				if grid.IsElement(o.BVF, i1, i2, i3) {
					nelem++
				}
			}
		}
	}
	return
}

// SetInitialDisplacements fills the initial field with the affine
// interpolant of the macroscopic strain at every active vertex; fixed DOFs
// thereby carry the imposed boundary values
func (o *Solver) SetInitialDisplacements(ms *inp.MacroStrain) {
	n1, n2, n3 := o.BVF.N1, o.BVF.N2, o.BVF.N3
	o.InitialDisplacements = grid.NewSparse4(3, n1+1, n2+1, n3+1)
	for i3 := 0; i3 < n3+1; i3++ {
		for i2 := 0; i2 < n2+1; i2++ {
			for i1 := 0; i1 < n1+1; i1++ {
				if !grid.IsVertex(o.BVF, i1, i2, i3) {
					continue
				}
				for dd := 0; dd < 3; dd++ {
					o.InitialDisplacements.Set(dd, i1, i2, i3, ms.InitialDisplacement(i1, i2, i3, dd, o.Resolution))
				}
			}
		}
	}
}

// SetInitialDisplacementsOnFree overwrites the initial field only at DOFs
// that are not Dirichlet-fixed, preserving the imposed boundary values
func (o *Solver) SetInitialDisplacementsOnFree(disp *grid.Sparse4) {
	if o.InitialDisplacements == nil {
		return
	}
	o.InitialDisplacements.Reset()
	for o.InitialDisplacements.Next() {
		i1, i2, i3, i4 := o.InitialDisplacements.Index()
		if o.FixedVariables.Value(i1, i2, i3, i4) == 0 {
			o.InitialDisplacements.Set(i1, i2, i3, i4, disp.Value(i1, i2, i3, i4))
		}
	}
}

// validate rejects inconsistent input before any block is built
func (o *Solver) validate() (err error) {
	if o.BVF == nil {
		return chk.Err("BVF map is not set")
	}
	if len(o.StiffnessMatrix) != 24 {
		return chk.Err("stiffness matrix must be 24x24; got %d rows", len(o.StiffnessMatrix))
	}
	for r, row := range o.StiffnessMatrix {
		if len(row) != 24 {
			return chk.Err("stiffness matrix must be 24x24; row %d has %d columns", r, len(row))
		}
	}
	if o.Nthreads < 1 {
		return chk.Err("number of threads must be at least 1; got %d", o.Nthreads)
	}
	if o.Epsilon < 0 {
		return chk.Err("epsilon must be nonnegative; got %g", o.Epsilon)
	}
	for i, h := range o.Resolution {
		if h <= 0 {
			return chk.Err("resolution[%d] must be positive; got %g", i, h)
		}
	}
	if o.YoungsModulus <= 0 {
		return chk.Err("Young's modulus must be positive; got %g", o.YoungsModulus)
	}
	if o.VoxelVolume <= 0 {
		return chk.Err("voxel volume must be positive; got %g", o.VoxelVolume)
	}
	n1, n2, n3 := o.BVF.N1+1, o.BVF.N2+1, o.BVF.N3+1
	if o.FixedVariables != nil {
		f := o.FixedVariables
		if f.N1 != 3 || f.N2 != n1 || f.N3 != n2 || f.N4 != n3 {
			return chk.Err("fixed-variables shape (%d,%d,%d,%d) does not match grid (3,%d,%d,%d)",
				f.N1, f.N2, f.N3, f.N4, n1, n2, n3)
		}
	}
	if o.InitialDisplacements != nil {
		u := o.InitialDisplacements
		if u.N1 != 3 || u.N2 != n1 || u.N3 != n2 || u.N4 != n3 {
			return chk.Err("initial-displacements shape (%d,%d,%d,%d) does not match grid (3,%d,%d,%d)",
				u.N1, u.N2, u.N3, u.N4, n1, n2, n3)
		}
	}
	return
}

// Solve decomposes the domain, builds the blocks and iterates until the
// estimated relative stress error stays below Epsilon for 5 consecutive
// iterations or the iteration budget is exhausted
func (o *Solver) Solve() (err error) {

	if err = o.validate(); err != nil {
		return
	}
	if o.ErrEst == nil {
		o.ErrEst = est.NewStressSeq()
	}
	o.nit = 0

	// decompose along z balancing active vertex counts
	counts, total := sliceVertexCounts(o.BVF)
	if total == 0 {
		io.Pfyel("domain is empty: no elements in the BVF map\n")
		o.blocks, o.infos, o.ppA, o.ppB = nil, nil, nil, nil
		return
	}
	zmin, zmax := decompose(counts, total, o.Nthreads)

	// build the blocks
	o.blocks = nil
	o.infos = nil
	nvar := 0
	for i := range zmin {
		b := NewBlock()
		P := o.setupParams(zmin[i], zmax[i])
		if err = b.Setup(P); err != nil {
			return
		}
		if b.Nvar == 0 {
			continue
		}
		o.blocks = append(o.blocks, b)
		o.infos = append(o.infos, BlockInfo{
			Zmin:           zmin[i],
			Zmax:           zmax[i],
			POnTopInner:    P.POnTopInner,
			POnBottomInner: P.POnBottomInner,
		})
		nvar += b.OwnedFreeVariableCount()
	}
	o.ppA = make([]StepAParams, len(o.blocks))
	o.ppB = make([]StepBParams, len(o.blocks))
	if o.Verbose {
		io.Pf("total number of variables: %d\n", nvar)
		io.Pf("using %d blocks\n", len(o.blocks))
	}

	return o.doIterations()
}

// setupParams extracts one block's slabs from the global inputs. The block
// spans the full x,y extent with the -1 origin convention, so only z-rings
// are ever outer-interface.
func (o *Solver) setupParams(zlo, zhi int) (P *SetupParams) {
	n1, n2 := o.BVF.N1, o.BVF.N2
	P = new(SetupParams)
	P.UsePreconditioner = o.UsePreconditioner
	P.Res = o.Resolution
	P.Nx = n1 + 3
	P.Ny = n2 + 3
	P.Nz = zhi - zlo + 1
	P.Xpos, P.Ypos, P.Zpos = -1, -1, zlo
	P.Kmat = o.StiffnessMatrix
	P.YoungsModulus = o.YoungsModulus
	P.VoxelVolume = o.VoxelVolume

	// volume fraction slab (padding layer included)
	P.Bvf = grid.NewByte3(P.Nx+1, P.Ny+1, P.Nz+1)
	for zz := 0; zz < P.Nz+1; zz++ {
		for yy := 0; yy < P.Ny+1; yy++ {
			for xx := 0; xx < P.Nx+1; xx++ {
				P.Bvf.Set(xx, yy, zz, o.BVF.Value(P.Xpos-1+xx, P.Ypos-1+yy, P.Zpos-1+zz))
			}
		}
	}

	// Dirichlet mask and initial displacement slabs
	P.Fixed = grid.NewByte4(P.Nx+2, P.Ny+2, P.Nz+2, 3)
	P.X0 = grid.NewFloat4(P.Nx+2, P.Ny+2, P.Nz+2, 3)
	for zz := 0; zz < P.Nz+2; zz++ {
		for yy := 0; yy < P.Ny+2; yy++ {
			for xx := 0; xx < P.Nx+2; xx++ {
				wx, wy, wz := P.Xpos-1+xx, P.Ypos-1+yy, P.Zpos-1+zz
				for dd := 0; dd < 3; dd++ {
					if o.FixedVariables != nil && o.FixedVariables.Value(dd, wx, wy, wz) != 0 {
						P.Fixed.Set(xx, yy, zz, dd, 1)
					}
					if o.InitialDisplacements != nil {
						P.X0.Set(xx, yy, zz, dd, o.InitialDisplacements.Value(dd, wx, wy, wz))
					}
				}
			}
		}
	}
	return
}

// doIterations runs the two-phase iteration protocol on the current blocks
func (o *Solver) doIterations() (err error) {

	for _, b := range o.blocks {
		b.SetAdjuster(o.adj)
	}

	nbelow := 0
	nb := len(o.blocks)
	for (o.nit < o.MaxIterations || o.MaxIterations <= 0) && nbelow < 5 {

		// stage the neighbour interface slices
		for i := 0; i < nb; i++ {
			o.ppA[i].POnTopOuter = nil
			o.ppA[i].POnBottomOuter = nil
			if i-1 >= 0 {
				o.ppA[i].POnTopOuter = o.infos[i-1].POnBottomInner
			}
			if i+1 < nb {
				o.ppA[i].POnBottomOuter = o.infos[i+1].POnTopInner
			}
		}

		// step A in parallel: exchange, matvec, partial inner products
		o.runPhase(func(b *Block, i int) {
			b.IterateStepA(&o.ppA[i])
		})

		// reduce
		var rz, rap, pap, apap float64
		for i := 0; i < nb; i++ {
			rz += o.ppA[i].Rz
			rap += o.ppA[i].RAp
			pap += o.ppA[i].PAp
			apap += o.ppA[i].ApAp
		}
		if math.IsNaN(rz) || math.IsInf(rz, 0) || math.IsNaN(pap) || math.IsInf(pap, 0) {
			return chk.Err("numerical breakdown (NaN/Inf) at iteration %d", o.nit)
		}

		// derive the global CG scalars
		var alpha, beta float64
		converged := false
		if pap == 0 {
			if rz != 0 {
				return chk.Err("degenerate scalars at iteration %d: <p,Ap> = 0 with <r,z> = %g", o.nit, rz)
			}
			// residual is zero: run one trivial step B to produce the
			// stress, then stop
			converged = true
		} else {
			alpha = rz / pap
			if rz != 0 {
				beta = (rz - 2.0*alpha*rap + alpha*alpha*apap) / rz
			}
		}
		for i := 0; i < nb; i++ {
			o.ppB[i].Alpha = alpha
			o.ppB[i].Beta = beta
		}

		// step B in parallel: vector updates, stress, fresh interfaces
		o.runPhase(func(b *Block, i int) {
			b.IterateStepB(&o.ppB[i])
		})

		// publish the interface slices for the next iteration
		for i := 0; i < nb; i++ {
			o.infos[i].POnTopInner = o.ppB[i].POnTopInner
			o.infos[i].POnBottomInner = o.ppB[i].POnBottomInner
		}

		o.nit++

		// convergence watch on the stress sequence
		sig := o.Stress()
		o.ErrEst.AddStressData(sig)
		if converged {
			return
		}
		if o.ErrEst.EstimatedRelativeError() < o.Epsilon {
			nbelow++
		} else {
			nbelow = 0
		}
	}
	return
}

// runPhase executes one parallel phase: blocks are assigned round-robin to
// Nthreads workers and the coordinator joins them all before returning
func (o *Solver) runPhase(fcn func(b *Block, i int)) {
	nb := len(o.blocks)
	nt := o.Nthreads
	if nt > nb {
		nt = nb
	}
	var eg errgroup.Group
	for tid := 0; tid < nt; tid++ {
		tid := tid
		eg.Go(func() error {
			for i := tid; i < nb; i += nt {
				fcn(o.blocks[i], i)
			}
			return nil
		})
	}
	eg.Wait()
}

// Clear releases the blocks' iteration arrays; displacements and reactions
// remain inspectable
func (o *Solver) Clear() {
	for _, b := range o.blocks {
		b.Clear()
	}
}
