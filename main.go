// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/microct/vofem/ele"
	"github.com/microct/vofem/fem"
	"github.com/microct/vofem/inp"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)

	// message
	if verbose {
		io.PfWhite("\nVofem -- Voxel Finite Element Method\n")
		io.Pf("Copyright 2017 The Vofem Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// read simulation data
	sim := inp.ReadSim(fnamepath)
	if sim == nil {
		chk.Panic("cannot read simulation input data")
	}

	// elemental stiffness
	res := sim.Resolution()
	kmat, err := ele.Hex8Stiffness(sim.Material.E, sim.Material.Nu, res[0], res[1], res[2])
	if err != nil {
		chk.Panic("cannot compute elemental stiffness:\n%v", err)
	}

	// build solver
	o := fem.NewSolver()
	o.Epsilon = sim.Solver.Epsilon
	o.MaxIterations = sim.Solver.NmaxIt
	o.Nthreads = sim.Solver.Nthreads
	o.UsePreconditioner = sim.Solver.Precond
	o.StiffnessMatrix = kmat
	o.YoungsModulus = sim.Material.E
	o.VoxelVolume = res[0] * res[1] * res[2]
	o.Resolution = res
	o.Verbose = verbose
	o.BVF, err = sim.BvfMap()
	if err != nil {
		chk.Panic("cannot build BVF map:\n%v", err)
	}
	nelem := o.SetFixedVariables(&sim.Strain)
	o.SetInitialDisplacements(&sim.Strain)
	if verbose {
		io.Pf("number of elements: %d\n", nelem)
	}

	// run
	if sim.Nonlinear.Nsteps > 0 {
		err = o.SolveNonlinear(sim.Nonlinear.StepSize, sim.Nonlinear.Nsteps, sim.Nonlinear.NitPerStep)
	} else {
		err = o.Solve()
	}
	if err != nil {
		chk.Panic("solve failed:\n%v", err)
	}

	// report
	sig := o.Stress()
	io.Pf("\nnumber of iterations = %d\n", o.NumIterations())
	io.Pf("stress (11,22,33,12,13,23) = %v\n", sig)
}
