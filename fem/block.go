// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/microct/vofem/ele"
	"github.com/microct/vofem/grid"
	"github.com/microct/vofem/mdl/solid"
)

// vertex ownership classes
const (
	vtInternal = 1 // strictly inside the owned region
	vtInner    = 2 // owned boundary layer, exported to neighbours
	vtOuter    = 3 // padding ring owned by a neighbour
)

// element is one occupied voxel inside a block. The four edge references
// are the variable indices of the vertices at (x,y,z), (x,y+1,z),
// (x,y,z+1) and (x,y+1,z+1); each spans 6 consecutive DOFs covering the
// x-adjacent vertex pair.
type element struct {
	ref    [4]int
	bvf    byte
	strain float64
}

// vertexLoc records an interface vertex position and its first DOF index
type vertexLoc struct {
	x, y, z int
	ref     int
}

// Block owns one z-slab of the voxel grid: its active DOFs, the CG state
// vectors, and the elements (including the padding layer) whose stiffness
// rows touch the owned DOFs
type Block struct {

	// geometry
	Nx, Ny, Nz       int
	Xpos, Ypos, Zpos int // world position of the owned region

	// state
	Nvar    int // number of variables (3 per active vertex in the padded box)
	X       []float64
	R       []float64
	P       []float64
	Ap      []float64
	Free    []byte
	Vtype   []byte
	Precond []float64
	Vinds   *grid.Int3 // (x,y,z) -> first DOF index, -1 if inactive

	// elements and interfaces
	elems []element
	inner []vertexLoc
	outer []vertexLoc

	// constants
	kern       *ele.Kernel
	bvf        *grid.Byte3 // local slab incl. padding layer
	res        [3]float64
	young      float64
	vol        float64
	usePrecond bool
	adj        solid.Adjuster
}

// NewBlock returns an empty block
func NewBlock() *Block {
	return new(Block)
}

// SetAdjuster installs (or clears, with nil) the nonlinear adjuster
func (o *Block) SetAdjuster(a solid.Adjuster) {
	o.adj = a
}

// Setup builds the block from its slab data, initialises x from the given
// field, computes r = -A*x (Dirichlet values in x provide the implicit
// load), sets p = r on free DOFs and packages the first interface slices.
// A slab with no active vertices is a valid no-op leaving Nvar == 0.
func (o *Block) Setup(P *SetupParams) (err error) {

	// constants
	o.kern, err = ele.NewKernel(P.Kmat)
	if err != nil {
		return
	}
	o.bvf = P.Bvf
	o.young = P.YoungsModulus
	o.vol = P.VoxelVolume
	o.Nx, o.Ny, o.Nz = P.Nx, P.Ny, P.Nz
	o.usePrecond = P.UsePreconditioner
	o.res = P.Res
	o.Xpos, o.Ypos, o.Zpos = P.Xpos, P.Ypos, P.Zpos

	// determine which vertices are needed
	occ := grid.NewByte3(P.Nx+2, P.Ny+2, P.Nz+2)
	for zz := 0; zz < P.Nz+1; zz++ {
		for yy := 0; yy < P.Ny+1; yy++ {
			for xx := 0; xx < P.Nx+1; xx++ {
				if P.Bvf.Value(xx, yy, zz) > 0 {
					for dzz := 0; dzz <= 1; dzz++ {
						for dyy := 0; dyy <= 1; dyy++ {
							for dxx := 0; dxx <= 1; dxx++ {
								occ.Set(xx+dxx, yy+dyy, zz+dzz, 1)
							}
						}
					}
				}
			}
		}
	}

	// assign the variable indices: 3 consecutive DOFs per active vertex,
	// x varying fastest so that x-adjacent vertices are index-adjacent
	o.Nvar = 0
	o.Vinds = grid.NewInt3(P.Nx+2, P.Ny+2, P.Nz+2)
	o.Vinds.SetAll(-1)
	for zz := 0; zz < P.Nz+2; zz++ {
		for yy := 0; yy < P.Ny+2; yy++ {
			for xx := 0; xx < P.Nx+2; xx++ {
				if occ.Value(xx, yy, zz) > 0 {
					o.Vinds.Set(xx, yy, zz, o.Nvar)
					o.Nvar += 3
				}
			}
		}
	}
	if o.Nvar == 0 {
		io.Pfyel("block at z=%d is empty\n", o.Zpos)
		return
	}

	// allocate vectors; classify DOFs; initialise x
	o.X = make([]float64, o.Nvar)
	o.R = make([]float64, o.Nvar)
	o.P = make([]float64, o.Nvar)
	o.Ap = make([]float64, o.Nvar)
	o.Free = make([]byte, o.Nvar)
	o.Vtype = make([]byte, o.Nvar)
	for zz := 0; zz < P.Nz+2; zz++ {
		for yy := 0; yy < P.Ny+2; yy++ {
			for xx := 0; xx < P.Nx+2; xx++ {
				if occ.Value(xx, yy, zz) == 0 {
					continue
				}
				for dd := 0; dd < 3; dd++ {
					varind := o.Vinds.Value(xx, yy, zz) + dd
					if P.Fixed.Value(xx, yy, zz, dd) == 0 {
						o.Free[varind] = 1
					}
					switch {
					case xx >= 2 && xx <= P.Nx-1 && yy >= 2 && yy <= P.Ny-1 && zz >= 2 && zz <= P.Nz-1:
						o.Vtype[varind] = vtInternal
					case xx >= 1 && xx <= P.Nx && yy >= 1 && yy <= P.Ny && zz >= 1 && zz <= P.Nz:
						o.Vtype[varind] = vtInner
						if dd == 0 {
							o.inner = append(o.inner, vertexLoc{xx, yy, zz, varind})
						}
					default:
						o.Vtype[varind] = vtOuter
						if dd == 0 {
							o.outer = append(o.outer, vertexLoc{xx, yy, zz, varind})
						}
					}
					o.X[varind] = P.X0.Value(xx, yy, zz, dd)
				}
			}
		}
	}

	// element list, padding layer included so that inner-interface
	// residual rows are complete
	for zz := 0; zz < P.Nz+1; zz++ {
		for yy := 0; yy < P.Ny+1; yy++ {
			for xx := 0; xx < P.Nx+1; xx++ {
				if P.Bvf.Value(xx, yy, zz) > 0 {
					var e element
					e.bvf = P.Bvf.Value(xx, yy, zz)
					e.ref[0] = o.Vinds.Value(xx, yy, zz)
					e.ref[1] = o.Vinds.Value(xx, yy+1, zz)
					e.ref[2] = o.Vinds.Value(xx, yy, zz+1)
					e.ref[3] = o.Vinds.Value(xx, yy+1, zz+1)
					o.elems = append(o.elems, e)
				}
			}
		}
	}

	// initialise r = -A*x; x carries the Dirichlet values so no separate
	// right-hand side is needed. r stays zero on the outer ring.
	o.mulA(o.R, o.X)
	for i := 0; i < o.Nvar; i++ {
		o.R[i] = -o.R[i]
	}
	P.Rnorm2 = o.ipOwnedFree(o.R, o.R)

	if o.usePrecond {
		o.Precond = make([]float64, o.Nvar)
		o.computePreconditioner()
	}

	// p = r on the free DOFs only; zero elsewhere
	for i := 0; i < o.Nvar; i++ {
		if o.Free[i] == 1 {
			if o.usePrecond && o.Precond[i] != 0 {
				o.P[i] = o.R[i] / o.Precond[i]
			} else {
				o.P[i] = o.R[i]
			}
		}
	}

	P.POnTopInner, P.POnBottomInner = o.packInterfaces()
	return
}

// packInterfaces copies the free inner-interface values of p at the top
// (local z == 1) and bottom (local z == Nz) layers into fresh slices
func (o *Block) packInterfaces() (top, bottom *grid.Slice2) {
	top = grid.NewSlice2(o.Nx, o.Ny)
	bottom = grid.NewSlice2(o.Nx, o.Ny)
	for _, vl := range o.inner {
		for dd := 0; dd < 3; dd++ {
			varind := vl.ref + dd
			if o.Free[varind] == 1 {
				// a single-layer slab exports its one layer to both sides
				if vl.z == 1 {
					top.Set(dd, vl.x-1, vl.y-1, o.P[varind])
				}
				if vl.z == o.Nz {
					bottom.Set(dd, vl.x-1, vl.y-1, o.P[varind])
				}
			}
		}
	}
	return
}

// IterateStepA imports the neighbour p values into the padding ring,
// applies the operator and returns the partial inner products
func (o *Block) IterateStepA(P *StepAParams) {
	if o.Nvar == 0 {
		P.Rz, P.RAp, P.PAp, P.ApAp = 0, 0, 0, 0
		return
	}

	// when the operator changes between iterations (nonlinear analysis)
	// the residual must be reinitialised from the current x
	if o.adj != nil {
		o.mulA(o.R, o.X)
		for i := 0; i < o.Nvar; i++ {
			o.R[i] = -o.R[i]
		}
	}

	// import neighbour p on the outer ring (free DOFs only)
	for _, vl := range o.outer {
		for dd := 0; dd < 3; dd++ {
			varind := vl.ref + dd
			if o.Free[varind] == 1 {
				if vl.z == 0 && P.POnTopOuter != nil {
					o.P[varind] = P.POnTopOuter.Value(dd, vl.x-1, vl.y-1)
				} else if vl.z == o.Nz+1 && P.POnBottomOuter != nil {
					o.P[varind] = P.POnBottomOuter.Value(dd, vl.x-1, vl.y-1)
				}
			}
		}
	}

	// p is now defined everywhere; Ap is defined on the owned DOFs
	o.mulA(o.Ap, o.P)

	if o.usePrecond {
		P.Rz = o.ipOwnedFreeDiv(o.R, o.R, o.Precond)
		P.RAp = o.ipOwnedFreeDiv(o.R, o.Ap, o.Precond)
		P.ApAp = o.ipOwnedFreeDiv(o.Ap, o.Ap, o.Precond)
	} else {
		P.Rz = o.ipOwnedFree(o.R, o.R)
		P.RAp = o.ipOwnedFree(o.R, o.Ap)
		P.ApAp = o.ipOwnedFree(o.Ap, o.Ap)
	}
	P.PAp = o.ipOwnedFree(o.P, o.Ap)
}

// IterateStepB runs the CG update recurrences, computes the partial stress
// and the reaction norm, packages the fresh interface slices and, in
// nonlinear analyses, recomputes the element strains
func (o *Block) IterateStepB(P *StepBParams) {
	if o.Nvar == 0 {
		P.Rr, P.BbBb = 0, 0
		P.Stress = [6]float64{}
		return
	}

	for i := 0; i < o.Nvar; i++ {
		o.R[i] -= o.Ap[i] * P.Alpha // r is never valid on the outer ring
		if o.Free[i] == 1 {
			o.X[i] += o.P[i] * P.Alpha // x is valid everywhere
			if o.usePrecond && o.Precond[i] != 0 {
				o.P[i] = o.P[i]*P.Beta + o.R[i]/o.Precond[i]
			} else {
				o.P[i] = o.P[i]*P.Beta + o.R[i]
			}
		}
	}

	P.Rr = o.ipOwnedFree(o.R, o.R)
	P.BbBb = o.ipOwnedFixed(o.R, o.R)
	P.Stress = o.computeStress()
	P.POnTopInner, P.POnBottomInner = o.packInterfaces()

	if o.adj != nil {
		o.updateStrains()
	}
}

// mulA computes y = A*x over the element list, accumulating only into
// owned rows
func (o *Block) mulA(y, x []float64) {
	for i := range y {
		y[i] = 0
	}
	var x0, y0 [24]float64
	var vinds [24]int
	for ie := range o.elems {
		e := &o.elems[ie]
		for k := 0; k < 4; k++ {
			for j := 0; j < 6; j++ {
				vinds[k*6+j] = e.ref[k] + j
			}
		}
		for k := 0; k < 24; k++ {
			x0[k] = x[vinds[k]]
		}
		phi := 1.0
		if o.adj != nil {
			phi = o.adj.Compute(e.strain)
		}
		o.kern.Apply(&x0, &y0, e.bvf, phi)
		for k := 0; k < 24; k++ {
			if o.Vtype[vinds[k]] != vtOuter {
				y[vinds[k]] += y0[k]
			}
		}
	}
}

// computePreconditioner accumulates the Jacobi diagonal over owned free DOFs
func (o *Block) computePreconditioner() {
	var vinds [24]int
	for ie := range o.elems {
		e := &o.elems[ie]
		for k := 0; k < 4; k++ {
			for j := 0; j < 6; j++ {
				vinds[k*6+j] = e.ref[k] + j
			}
		}
		phi := 1.0
		if o.adj != nil {
			phi = o.adj.Compute(e.strain)
		}
		for k := 0; k < 24; k++ {
			if o.Vtype[vinds[k]] != vtOuter && o.Free[vinds[k]] == 1 {
				o.Precond[vinds[k]] += o.kern.Diag(k, e.bvf, phi)
			}
		}
	}
}

func (o *Block) ipOwnedFree(v1, v2 []float64) (r float64) {
	for i := 0; i < o.Nvar; i++ {
		if o.Vtype[i] != vtOuter && o.Free[i] == 1 {
			r += v1[i] * v2[i]
		}
	}
	return
}

func (o *Block) ipOwnedFreeDiv(v1, v2, div []float64) (r float64) {
	for i := 0; i < o.Nvar; i++ {
		if o.Vtype[i] != vtOuter && o.Free[i] == 1 {
			if div[i] != 0 {
				r += v1[i] * v2[i] / div[i]
			} else {
				r += v1[i] * v2[i]
			}
		}
	}
	return
}

func (o *Block) ipOwnedFixed(v1, v2 []float64) (r float64) {
	for i := 0; i < o.Nvar; i++ {
		if o.Vtype[i] != vtOuter && o.Free[i] == 0 {
			r += v1[i] * v2[i]
		}
	}
	return
}

// computeStress accumulates the block's partial macroscopic stress from the
// nodal reactions over the owned region (local z in 1..Nz). The residual is
// -A*x, so the reaction applied by a constraint is its negation; with this
// sign a tensile strain produces a positive normal stress.
func (o *Block) computeStress() (sig [6]float64) {
	for i3 := 0; i3 < o.Nz; i3++ {
		for i2 := 0; i2 < o.Ny; i2++ {
			for i1 := 0; i1 < o.Nx; i1++ {
				fx := -o.Force(i1+1, i2+1, i3+1, 0)
				fy := -o.Force(i1+1, i2+1, i3+1, 1)
				fz := -o.Force(i1+1, i2+1, i3+1, 2)
				if fx != 0 || fy != 0 || fz != 0 {
					x := float64(o.Xpos+i1) * o.res[0]
					y := float64(o.Ypos+i2) * o.res[1]
					z := float64(o.Zpos+i3) * o.res[2]
					sig[0] += fx * x
					sig[1] += fy * y
					sig[2] += fz * z
					sig[3] += (fx*y + fy*x) * 0.5
					sig[4] += (fx*z + fz*x) * 0.5
					sig[5] += (fy*z + fz*y) * 0.5
				}
			}
		}
	}
	return
}

// EnergyMap computes the per-element strain energies over the local slab
// (padding layer included) as a sparse (1,Nx+1,Ny+1,Nz+1) map
func (o *Block) EnergyMap() (em *grid.Sparse4) {
	em = grid.NewSparse4(1, o.Nx+1, o.Ny+1, o.Nz+1)
	if o.Nvar == 0 {
		return
	}
	var x0 [24]float64
	var vinds [24]int
	for zz := 0; zz < o.Nz+1; zz++ {
		for yy := 0; yy < o.Ny+1; yy++ {
			for xx := 0; xx < o.Nx+1; xx++ {
				if !grid.IsElement(o.bvf, xx, yy, zz) {
					continue
				}
				var ref [4]int
				ref[0] = o.Vinds.Value(xx, yy, zz)
				ref[1] = o.Vinds.Value(xx, yy+1, zz)
				ref[2] = o.Vinds.Value(xx, yy, zz+1)
				ref[3] = o.Vinds.Value(xx, yy+1, zz+1)
				for k := 0; k < 4; k++ {
					for j := 0; j < 6; j++ {
						vinds[k*6+j] = ref[k] + j
					}
				}
				for k := 0; k < 24; k++ {
					x0[k] = o.X[vinds[k]]
				}
				em.Set(0, xx, yy, zz, o.kern.Energy(&x0, o.bvf.Value(xx, yy, zz)))
			}
		}
	}
	return
}

// updateStrains recomputes the accumulated element strains from the
// current energy map: strain = sqrt(2|e| / (V*E*bvf/100))
func (o *Block) updateStrains() {
	em := o.EnergyMap()
	ct := 0
	for zz := 0; zz < o.Nz+1; zz++ {
		for yy := 0; yy < o.Ny+1; yy++ {
			for xx := 0; xx < o.Nx+1; xx++ {
				if o.bvf.Value(xx, yy, zz) > 0 {
					e := em.Value(0, xx, yy, zz)
					bvfFactor := float64(o.elems[ct].bvf) / 100.0
					o.elems[ct].strain = math.Sqrt(2.0 * math.Abs(e) / (o.vol * o.young * bvfFactor))
					ct++
				}
			}
		}
	}
}

// Displacement returns the displacement at local vertex (xx,yy,zz),
// direction dd; 0 if the vertex is inactive
func (o *Block) Displacement(xx, yy, zz, dd int) float64 {
	varind := o.Vinds.Value(xx, yy, zz)
	if varind < 0 {
		return 0
	}
	return o.X[varind+dd]
}

// Force returns the residual (reaction force at fixed DOFs) at local
// vertex (xx,yy,zz), direction dd; 0 if the vertex is inactive
func (o *Block) Force(xx, yy, zz, dd int) float64 {
	varind := o.Vinds.Value(xx, yy, zz)
	if varind < 0 {
		return 0
	}
	return o.R[varind+dd]
}

// OwnedFreeVariableCount returns the number of owned free DOFs
func (o *Block) OwnedFreeVariableCount() (n int) {
	for i := 0; i < o.Nvar; i++ {
		if o.Free[i] == 1 && o.Vtype[i] != vtOuter {
			n++
		}
	}
	return
}

// OwnedVariableCount returns the number of owned DOFs (free and fixed)
func (o *Block) OwnedVariableCount() (n int) {
	for i := 0; i < o.Nvar; i++ {
		if o.Vtype[i] != vtOuter {
			n++
		}
	}
	return
}

// VariableCount returns the total number of local DOFs
func (o *Block) VariableCount() int {
	return o.Nvar
}

// Clear releases the iteration arrays; x and r remain inspectable
func (o *Block) Clear() {
	o.P = nil
	o.Ap = nil
	o.Free = nil
	o.Vtype = nil
	o.Precond = nil
	o.elems = nil
	o.inner = nil
	o.outer = nil
}
