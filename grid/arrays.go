// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements dense and sparse voxel-grid arrays
package grid

// Byte3 is a dense 3D array of bytes with x varying fastest.
// Out-of-range reads return 0 so that padding layers around a slab
// can be extracted without explicit bounds handling at every site.
type Byte3 struct {
	N1, N2, N3 int
	V          []byte
}

// NewByte3 allocates an N1 x N2 x N3 byte array
func NewByte3(n1, n2, n3 int) (o *Byte3) {
	o = new(Byte3)
	o.N1, o.N2, o.N3 = n1, n2, n3
	o.V = make([]byte, n1*n2*n3)
	return
}

// Value returns the entry at (x,y,z); 0 if out of range
func (o *Byte3) Value(x, y, z int) byte {
	if x < 0 || x >= o.N1 || y < 0 || y >= o.N2 || z < 0 || z >= o.N3 {
		return 0
	}
	return o.V[x+o.N1*(y+o.N2*z)]
}

// Set sets the entry at (x,y,z)
func (o *Byte3) Set(x, y, z int, v byte) {
	o.V[x+o.N1*(y+o.N2*z)] = v
}

// Int3 is a dense 3D array of ints with x varying fastest
type Int3 struct {
	N1, N2, N3 int
	V          []int
}

// NewInt3 allocates an N1 x N2 x N3 int array
func NewInt3(n1, n2, n3 int) (o *Int3) {
	o = new(Int3)
	o.N1, o.N2, o.N3 = n1, n2, n3
	o.V = make([]int, n1*n2*n3)
	return
}

// SetAll sets all entries to v
func (o *Int3) SetAll(v int) {
	for i := range o.V {
		o.V[i] = v
	}
}

// Value returns the entry at (x,y,z)
func (o *Int3) Value(x, y, z int) int {
	return o.V[x+o.N1*(y+o.N2*z)]
}

// Set sets the entry at (x,y,z)
func (o *Int3) Set(x, y, z int, v int) {
	o.V[x+o.N1*(y+o.N2*z)] = v
}

// Byte4 is a dense 4D byte array indexed (x,y,z,d) with x varying fastest
type Byte4 struct {
	N1, N2, N3, N4 int
	V              []byte
}

// NewByte4 allocates an N1 x N2 x N3 x N4 byte array
func NewByte4(n1, n2, n3, n4 int) (o *Byte4) {
	o = new(Byte4)
	o.N1, o.N2, o.N3, o.N4 = n1, n2, n3, n4
	o.V = make([]byte, n1*n2*n3*n4)
	return
}

// Value returns the entry at (x,y,z,d)
func (o *Byte4) Value(x, y, z, d int) byte {
	return o.V[x+o.N1*(y+o.N2*(z+o.N3*d))]
}

// Set sets the entry at (x,y,z,d)
func (o *Byte4) Set(x, y, z, d int, v byte) {
	o.V[x+o.N1*(y+o.N2*(z+o.N3*d))] = v
}

// Float4 is a dense 4D float64 array indexed (x,y,z,d) with x varying fastest
type Float4 struct {
	N1, N2, N3, N4 int
	V              []float64
}

// NewFloat4 allocates an N1 x N2 x N3 x N4 float64 array
func NewFloat4(n1, n2, n3, n4 int) (o *Float4) {
	o = new(Float4)
	o.N1, o.N2, o.N3, o.N4 = n1, n2, n3, n4
	o.V = make([]float64, n1*n2*n3*n4)
	return
}

// Value returns the entry at (x,y,z,d)
func (o *Float4) Value(x, y, z, d int) float64 {
	return o.V[x+o.N1*(y+o.N2*(z+o.N3*d))]
}

// Set sets the entry at (x,y,z,d)
func (o *Float4) Set(x, y, z, d int, v float64) {
	o.V[x+o.N1*(y+o.N2*(z+o.N3*d))] = v
}

// Slice2 holds one xy interface layer of the search direction:
// 3 DOFs per vertex over an Nx x Ny plane
type Slice2 struct {
	Nx, Ny int
	V      []float64
}

// NewSlice2 allocates a 3 x nx x ny interface slice
func NewSlice2(nx, ny int) (o *Slice2) {
	o = new(Slice2)
	o.Nx, o.Ny = nx, ny
	o.V = make([]float64, 3*nx*ny)
	return
}

// Value returns the entry for DOF d at plane position (x,y)
func (o *Slice2) Value(d, x, y int) float64 {
	return o.V[d+3*(x+o.Nx*y)]
}

// Set sets the entry for DOF d at plane position (x,y)
func (o *Slice2) Set(d, x, y int, v float64) {
	o.V[d+3*(x+o.Nx*y)] = v
}
