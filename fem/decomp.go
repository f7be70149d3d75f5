// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/microct/vofem/grid"
)

// sliceVertexCounts counts the active vertices in each of the N3+1 vertex
// slices along z
func sliceVertexCounts(bvf *grid.Byte3) (counts []int, total int) {
	counts = make([]int, bvf.N3+1)
	for z := 0; z < bvf.N3+1; z++ {
		for y := 0; y < bvf.N2+1; y++ {
			for x := 0; x < bvf.N1+1; x++ {
				if grid.IsVertex(bvf, x, y, z) {
					counts[z]++
					total++
				}
			}
		}
	}
	return
}

// decompose splits the vertex slices 0..N3 into up to nthreads contiguous
// z-ranges with roughly equal active vertex counts. Each range is extended
// greedily while adding the next slice moves the count closer to the
// target; the last range takes all remaining slices. Ranges with no active
// vertices are omitted.
func decompose(counts []int, total, nthreads int) (zmin, zmax []int) {
	n3 := len(counts) - 1
	target := float64(total) / float64(nthreads)
	z0 := -1
	for ithread := 0; ithread < nthreads; ithread++ {
		lo := z0 + 1
		if lo > n3 {
			break
		}
		hi := n3
		if ithread < nthreads-1 {
			hi = lo
			if hi < n3+1 {
				count := counts[hi]
				for hi < n3 {
					diff0 := math.Abs(float64(count) - target)
					count += counts[hi+1]
					diff1 := math.Abs(float64(count) - target)
					if diff1 >= diff0 {
						break
					}
					hi++
				}
			}
			z0 = hi
		}
		nv := 0
		for z := lo; z <= hi; z++ {
			nv += counts[z]
		}
		if nv > 0 {
			zmin = append(zmin, lo)
			zmax = append(zmax, hi)
		}
	}
	return
}
