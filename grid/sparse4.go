// Copyright 2017 The Vofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// Sparse4 is a coordinate-list sparse 4D float64 array indexed (i1,i2,i3,i4).
// Missing entries read as 0. Writes are O(1) amortised and iteration visits
// entries in insertion order.
type Sparse4 struct {
	N1, N2, N3, N4 int
	keys           map[int64]int
	inds           [][4]int
	vals           []float64
	it             int
}

// NewSparse4 allocates an empty N1 x N2 x N3 x N4 sparse array
func NewSparse4(n1, n2, n3, n4 int) (o *Sparse4) {
	o = new(Sparse4)
	o.N1, o.N2, o.N3, o.N4 = n1, n2, n3, n4
	o.keys = make(map[int64]int)
	return
}

func (o *Sparse4) key(i1, i2, i3, i4 int) int64 {
	return int64(i1) + int64(o.N1)*(int64(i2)+int64(o.N2)*(int64(i3)+int64(o.N3)*int64(i4)))
}

// Value returns the entry at (i1,i2,i3,i4); 0 if absent or out of range
func (o *Sparse4) Value(i1, i2, i3, i4 int) float64 {
	if i1 < 0 || i1 >= o.N1 || i2 < 0 || i2 >= o.N2 || i3 < 0 || i3 >= o.N3 || i4 < 0 || i4 >= o.N4 {
		return 0
	}
	if pos, ok := o.keys[o.key(i1, i2, i3, i4)]; ok {
		return o.vals[pos]
	}
	return 0
}

// Set writes the entry at (i1,i2,i3,i4), creating it on first write
func (o *Sparse4) Set(i1, i2, i3, i4 int, v float64) {
	k := o.key(i1, i2, i3, i4)
	if pos, ok := o.keys[k]; ok {
		o.vals[pos] = v
		return
	}
	o.keys[k] = len(o.vals)
	o.inds = append(o.inds, [4]int{i1, i2, i3, i4})
	o.vals = append(o.vals, v)
}

// Len returns the number of stored entries
func (o *Sparse4) Len() int {
	return len(o.vals)
}

// Reset rewinds the iterator
func (o *Sparse4) Reset() {
	o.it = -1
}

// Next advances the iterator; false when exhausted
func (o *Sparse4) Next() bool {
	o.it++
	return o.it < len(o.vals)
}

// Index returns the indices of the current entry
func (o *Sparse4) Index() (i1, i2, i3, i4 int) {
	c := o.inds[o.it]
	return c[0], c[1], c[2], c[3]
}

// Current returns the value of the current entry
func (o *Sparse4) Current() float64 {
	return o.vals[o.it]
}
