// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_nonlinear01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nonlinear01. softening continuation on a uniform cube")

	E, nu, eps := 1.0, 0.3, 0.01
	o := buildTestSolver(tst, 4, 4, 4, uniform100, E, nu, uniaxial(2, eps), 2, false)
	o.Epsilon = 1e-8
	o.MaxIterations = 5000

	if err := o.SolveNonlinear(0.001, 10, 30); err != nil {
		tst.Errorf("nonlinear solve failed: %v\n", err)
		return
	}

	// per-step budget honoured on the last step
	chk.IntAssert(o.NumIterations(), 30)

	// with the Dirichlet data held and the elements weakened, the stress
	// stays positive and below the linear elastic value
	sig := o.Stress()
	if sig[2] <= 0 {
		tst.Errorf("nonpositive sig33 after softening: %g\n", sig[2])
		return
	}
	if sig[2] > E*eps*1.01 {
		tst.Errorf("softened sig33 above the linear value: %g\n", sig[2])
		return
	}

	// element strains were accumulated and the softening factors are in
	// range; in the relaxed uniaxial stress state the energy density is
	// 0.5*E*eps^2, so the strain estimate tracks eps itself
	expected := eps
	for _, b := range o.blocks {
		for ie := range b.elems {
			s := b.elems[ie].strain
			if s <= 0 {
				tst.Errorf("element %d has no accumulated strain\n", ie)
				return
			}
			if s < 0.5*expected || s > 2.0*expected {
				tst.Errorf("element %d strain %g far from estimate %g\n", ie, s, expected)
				return
			}
			phi := o.adj.Compute(s)
			if phi <= 0 || phi > 1 {
				tst.Errorf("softening factor out of range: %g\n", phi)
				return
			}
		}
	}
}

func Test_nonlinear02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nonlinear02. zero steps reduces to the linear solve")

	E, nu, eps := 1.0, 0.3, 0.01
	o := buildTestSolver(tst, 3, 3, 3, uniform100, E, nu, uniaxial(0, eps), 1, false)
	o.Epsilon = 1e-8
	o.MaxIterations = 5000

	if err := o.SolveNonlinear(0.001, 0, 50); err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	sig := o.Stress()
	chk.Scalar(tst, "sig11", 0.01*E*eps, sig[0], E*eps)
}
