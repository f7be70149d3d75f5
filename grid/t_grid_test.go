// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sparse01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sparse01. insertion order and default zero")

	s := NewSparse4(3, 5, 5, 5)
	chk.Scalar(tst, "missing reads 0", 1e-17, s.Value(0, 1, 2, 3), 0)

	s.Set(0, 1, 2, 3, 1.5)
	s.Set(2, 4, 4, 4, -2.5)
	s.Set(0, 1, 2, 3, 3.5) // overwrite keeps position
	chk.IntAssert(s.Len(), 2)
	chk.Scalar(tst, "overwritten", 1e-17, s.Value(0, 1, 2, 3), 3.5)
	chk.Scalar(tst, "second", 1e-17, s.Value(2, 4, 4, 4), -2.5)
	chk.Scalar(tst, "out of range", 1e-17, s.Value(0, -1, 0, 0), 0)

	// insertion order
	var got []float64
	s.Reset()
	for s.Next() {
		got = append(got, s.Current())
	}
	chk.Vector(tst, "iteration order", 1e-17, got, []float64{3.5, -2.5})
}

func Test_occupancy01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("occupancy01. single voxel vertices")

	bvf := NewByte3(2, 2, 2)
	bvf.Set(0, 0, 0, 100)

	chk.IntAssert(b2i(IsElement(bvf, 0, 0, 0)), 1)
	chk.IntAssert(b2i(IsElement(bvf, 1, 0, 0)), 0)
	chk.IntAssert(b2i(IsElement(bvf, -1, 0, 0)), 0)

	// all 8 corners of voxel (0,0,0) are vertices
	nv := 0
	for z := 0; z < 3; z++ {
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				if IsVertex(bvf, x, y, z) {
					nv++
				}
			}
		}
	}
	chk.IntAssert(nv, 8)
	chk.IntAssert(b2i(IsVertex(bvf, 2, 2, 2)), 0)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
