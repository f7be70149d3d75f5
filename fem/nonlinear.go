// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"

	"github.com/microct/vofem/mdl/solid"
)

// SolveNonlinear runs the linear solve and then the continuation loop: at
// step s the yield strain is 0.01/(s*stepSize), elements are weakened by
// the softening factor of their accumulated strain, and the iteration runs
// to the per-step budget with the convergence exit disabled
func (o *Solver) SolveNonlinear(stepSize float64, nsteps, nitPerStep int) (err error) {

	// linear simulation first: baseline x, r and zero element strains
	if err = o.Solve(); err != nil {
		return
	}
	if o.Verbose {
		io.Pf("linear stress = %v\n", o.Stress())
	}

	adj := new(solid.LinearSoftening)
	for s := 1; s <= nsteps; s++ {
		eps := stepSize * float64(s)
		adj.EpsYield = 0.01 / eps
		o.adj = adj
		o.MaxIterations = nitPerStep
		o.Epsilon = 0
		o.nit = 0
		if err = o.doIterations(); err != nil {
			return
		}
		if o.Verbose {
			io.Pf("step %d: eps = %g, stress = %v\n", s, eps, o.Stress())
		}
	}
	return
}
