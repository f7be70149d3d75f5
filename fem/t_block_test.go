// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/microct/vofem/ele"
	"github.com/microct/vofem/grid"
	"github.com/microct/vofem/inp"
)

// buildTestSolver assembles a solver over an n1 x n2 x n3 grid whose volume
// fractions come from bvffcn, with the elemental stiffness generated for
// unit voxels of material (E,nu)
func buildTestSolver(tst *testing.T, n1, n2, n3 int, bvffcn func(x, y, z int) byte, E, nu float64, ms *inp.MacroStrain, nthreads int, precond bool) (o *Solver) {
	kmat, err := ele.Hex8Stiffness(E, nu, 1, 1, 1)
	if err != nil {
		tst.Fatalf("Hex8Stiffness failed: %v\n", err)
	}
	bvf := grid.NewByte3(n1, n2, n3)
	for z := 0; z < n3; z++ {
		for y := 0; y < n2; y++ {
			for x := 0; x < n1; x++ {
				bvf.Set(x, y, z, bvffcn(x, y, z))
			}
		}
	}
	o = NewSolver()
	o.StiffnessMatrix = kmat
	o.YoungsModulus = E
	o.VoxelVolume = 1
	o.Nthreads = nthreads
	o.UsePreconditioner = precond
	o.BVF = bvf
	o.SetFixedVariables(ms)
	o.SetInitialDisplacements(ms)
	return
}

func uniform100(x, y, z int) byte { return 100 }

func Test_block01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("block01. setup counts and zero-field residual")

	ms := &inp.MacroStrain{} // no strain, nothing fixed
	o := buildTestSolver(tst, 4, 4, 4, uniform100, 1, 0.3, ms, 1, false)

	P := o.setupParams(0, 4)
	b := NewBlock()
	if err := b.Setup(P); err != nil {
		tst.Errorf("setup failed: %v\n", err)
		return
	}

	// 5x5x5 active vertices, all owned by the single block
	chk.IntAssert(b.VariableCount(), 3*125)
	chk.IntAssert(b.OwnedVariableCount(), 3*125)
	chk.IntAssert(b.OwnedFreeVariableCount(), 3*125)

	// zero initial field with no load gives a zero residual
	chk.Scalar(tst, "rnorm2", 1e-17, P.Rnorm2, 0)
}

func Test_block02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("block02. operator symmetry <u,Av> = <v,Au>")

	ms := &inp.MacroStrain{}
	o := buildTestSolver(tst, 3, 4, 5, func(x, y, z int) byte {
		if (x+y+z)%3 == 0 {
			return 0 // holes
		}
		return byte(40 + 10*((x+2*y+3*z)%7))
	}, 1, 0.3, ms, 1, false)

	P := o.setupParams(0, 5)
	b := NewBlock()
	if err := b.Setup(P); err != nil {
		tst.Errorf("setup failed: %v\n", err)
		return
	}

	// deterministic pseudo-random vectors
	u := make([]float64, b.Nvar)
	v := make([]float64, b.Nvar)
	for i := 0; i < b.Nvar; i++ {
		u[i] = math.Sin(1.7*float64(i) + 0.3)
		v[i] = math.Cos(2.3*float64(i) + 1.1)
	}
	au := make([]float64, b.Nvar)
	av := make([]float64, b.Nvar)
	b.mulA(au, u)
	b.mulA(av, v)

	uav, vau, scale := 0.0, 0.0, 0.0
	for i := 0; i < b.Nvar; i++ {
		uav += u[i] * av[i]
		vau += v[i] * au[i]
		scale += math.Abs(u[i] * av[i])
	}
	chk.Scalar(tst, "symmetry", 1e-12*(1+scale), uav, vau)
}

func Test_block03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("block03. two blocks own every DOF exactly once")

	ms := &inp.MacroStrain{}
	o := buildTestSolver(tst, 4, 4, 6, uniform100, 2, 0.3, ms, 2, false)

	counts, total := sliceVertexCounts(o.BVF)
	zmin, zmax := decompose(counts, total, 2)
	chk.IntAssert(len(zmin), 2)

	owned := 0
	for i := range zmin {
		b := NewBlock()
		if err := b.Setup(o.setupParams(zmin[i], zmax[i])); err != nil {
			tst.Errorf("setup failed: %v\n", err)
			return
		}
		owned += b.OwnedVariableCount()
	}
	chk.IntAssert(owned, 3*total)
}
