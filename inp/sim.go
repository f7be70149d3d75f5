// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/microct/vofem/grid"
)

// Data holds global data for simulations
type Data struct {
	Desc string `json:"desc"` // description of simulation
}

// GridData holds the voxel grid definition. Either BvfUniform fills the
// whole grid with one volume fraction, or Bvf supplies the full map
// indexed [z][y][x].
type GridData struct {
	N          []int       `json:"n"`          // number of voxels along x,y,z
	Res        []float64   `json:"res"`        // voxel resolution hx,hy,hz
	BvfUniform int         `json:"bvfuniform"` // uniform volume fraction 0..100
	Bvf        [][][]int   `json:"bvf"`        // full volume fraction map [z][y][x]
}

// MaterialData holds the isotropic elastic material
type MaterialData struct {
	E  float64 `json:"E"`  // Young's modulus
	Nu float64 `json:"nu"` // Poisson's ratio
}

// SolverData holds solver settings
type SolverData struct {
	Epsilon  float64 `json:"epsilon"`  // convergence threshold on relative stress error
	NmaxIt   int     `json:"nmaxit"`   // max iterations; 0 means unbounded
	Nthreads int     `json:"nthreads"` // number of worker threads
	Precond  bool    `json:"precond"`  // use Jacobi preconditioner
}

// NonlinearData holds the continuation loop settings; Nsteps == 0 disables
// the nonlinear analysis
type NonlinearData struct {
	StepSize   float64 `json:"stepsize"`   // macroscopic strain increment per step
	Nsteps     int     `json:"nsteps"`     // number of continuation steps
	NitPerStep int     `json:"nitperstep"` // iteration budget per step
}

// Simulation holds all simulation input data
type Simulation struct {
	Data      Data          `json:"data"`      // global data
	Grid      GridData      `json:"grid"`      // voxel grid
	Material  MaterialData  `json:"material"`  // elastic material
	Strain    MacroStrain   `json:"strain"`    // imposed macroscopic strain
	Solver    SolverData    `json:"solver"`    // solver settings
	Nonlinear NonlinearData `json:"nonlinear"` // nonlinear continuation settings
}

// ReadSim reads a simulation input file. Returns nil on failure.
func ReadSim(simfilepath string) *Simulation {

	// read file
	b := io.ReadFile(simfilepath)

	// decode
	var o Simulation
	o.SetDefault()
	if err := json.Unmarshal(b, &o); err != nil {
		io.PfRed("sim file %q is invalid: %v\n", simfilepath, err)
		return nil
	}

	// check
	if err := o.Check(); err != nil {
		io.PfRed("sim file %q is inconsistent: %v\n", simfilepath, err)
		return nil
	}
	return &o
}

// SetDefault sets default values
func (o *Simulation) SetDefault() {
	o.Material.E = 1
	o.Material.Nu = 0.3
	o.Solver.Epsilon = 0.001
	o.Solver.Nthreads = 1
}

// Check verifies the consistency of the input data
func (o *Simulation) Check() (err error) {
	if len(o.Grid.N) != 3 {
		return chk.Err("grid.n must have 3 entries; got %d", len(o.Grid.N))
	}
	for i, n := range o.Grid.N {
		if n < 1 {
			return chk.Err("grid.n[%d] must be positive; got %d", i, n)
		}
	}
	if len(o.Grid.Res) != 3 {
		return chk.Err("grid.res must have 3 entries; got %d", len(o.Grid.Res))
	}
	for i, h := range o.Grid.Res {
		if h <= 0 {
			return chk.Err("grid.res[%d] must be positive; got %g", i, h)
		}
	}
	if o.Grid.BvfUniform < 0 || o.Grid.BvfUniform > 100 {
		return chk.Err("grid.bvfuniform must be in [0,100]; got %d", o.Grid.BvfUniform)
	}
	if o.Solver.Nthreads < 1 {
		return chk.Err("solver.nthreads must be at least 1; got %d", o.Solver.Nthreads)
	}
	return
}

// BvfMap builds the volume fraction map from the grid data
func (o *Simulation) BvfMap() (bvf *grid.Byte3, err error) {
	n1, n2, n3 := o.Grid.N[0], o.Grid.N[1], o.Grid.N[2]
	bvf = grid.NewByte3(n1, n2, n3)
	if o.Grid.Bvf == nil {
		for i := range bvf.V {
			bvf.V[i] = byte(o.Grid.BvfUniform)
		}
		return
	}
	if len(o.Grid.Bvf) != n3 {
		return nil, chk.Err("grid.bvf has %d z-layers; expected %d", len(o.Grid.Bvf), n3)
	}
	for z := 0; z < n3; z++ {
		if len(o.Grid.Bvf[z]) != n2 {
			return nil, chk.Err("grid.bvf layer %d has %d rows; expected %d", z, len(o.Grid.Bvf[z]), n2)
		}
		for y := 0; y < n2; y++ {
			if len(o.Grid.Bvf[z][y]) != n1 {
				return nil, chk.Err("grid.bvf row (%d,%d) has %d entries; expected %d", z, y, len(o.Grid.Bvf[z][y]), n1)
			}
			for x := 0; x < n1; x++ {
				v := o.Grid.Bvf[z][y][x]
				if v < 0 || v > 100 {
					return nil, chk.Err("grid.bvf value at (%d,%d,%d) out of [0,100]: %d", x, y, z, v)
				}
				bvf.Set(x, y, z, byte(v))
			}
		}
	}
	return
}

// Resolution returns the voxel resolution as a fixed array
func (o *Simulation) Resolution() (res [3]float64) {
	copy(res[:], o.Grid.Res)
	return
}
