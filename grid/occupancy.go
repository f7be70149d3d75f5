// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// IsElement reports whether voxel (x,y,z) holds a finite element; i.e.
// whether it is in range and has nonzero volume fraction
func IsElement(bvf *Byte3, x, y, z int) bool {
	if x < 0 || x >= bvf.N1 || y < 0 || y >= bvf.N2 || z < 0 || z >= bvf.N3 {
		return false
	}
	return bvf.Value(x, y, z) > 0
}

// IsVertex reports whether grid vertex (x,y,z) is active; i.e. whether any
// of its up to 8 adjacent voxels holds an element
func IsVertex(bvf *Byte3, x, y, z int) bool {
	for dz := -1; dz <= 0; dz++ {
		for dy := -1; dy <= 0; dy++ {
			for dx := -1; dx <= 0; dx++ {
				if IsElement(bvf, x+dx, y+dy, z+dz) {
					return true
				}
			}
		}
	}
	return false
}
