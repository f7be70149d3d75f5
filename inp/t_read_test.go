// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_read01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read01. cube4.sim")

	sim := ReadSim("data/cube4.sim")
	if sim == nil {
		tst.Errorf("cannot read sim file\n")
		return
	}

	chk.Ints(tst, "grid.n", sim.Grid.N, []int{4, 4, 4})
	chk.Vector(tst, "grid.res", 1e-17, sim.Grid.Res, []float64{1, 1, 1})
	chk.IntAssert(sim.Grid.BvfUniform, 100)
	chk.Scalar(tst, "E", 1e-17, sim.Material.E, 1.0)
	chk.Scalar(tst, "nu", 1e-17, sim.Material.Nu, 0.3)
	chk.Scalar(tst, "eps11", 1e-17, sim.Strain.Tensor[0][0], 0.01)
	chk.IntAssert(sim.Strain.Restrictions[0][0], 1)
	chk.IntAssert(sim.Strain.Restrictions[1][1], 0)
	chk.Scalar(tst, "epsilon", 1e-17, sim.Solver.Epsilon, 1e-6)
	chk.IntAssert(sim.Solver.Nthreads, 2)
	chk.IntAssert(sim.Nonlinear.Nsteps, 0)

	bvf, err := sim.BvfMap()
	if err != nil {
		tst.Errorf("BvfMap failed: %v\n", err)
		return
	}
	chk.IntAssert(int(bvf.Value(3, 3, 3)), 100)
}

func Test_strain01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("strain01. affine initial field")

	ms := MacroStrain{}
	ms.Tensor[0][0] = 0.01
	ms.Tensor[1][2] = 0.002
	res := [3]float64{1, 2, 0.5}

	// u_x(x,y,z) = hx*x*eps_xx
	chk.Scalar(tst, "u_x", 1e-17, ms.InitialDisplacement(4, 7, 9, 0, res), 0.04)
	// u_y(x,y,z) = hz*z*eps_yz
	chk.Scalar(tst, "u_y", 1e-17, ms.InitialDisplacement(4, 7, 10, 1, res), 0.01)
	// u_z = 0
	chk.Scalar(tst, "u_z", 1e-17, ms.InitialDisplacement(4, 7, 10, 2, res), 0)
}
