// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Dims is a list of vector dimension (component) names.
type Dims int32

const (
	// X is the horizontal dimension.
	X Dims = iota

	// Y is the vertical dimension.
	Y
)

// Other returns the other dimension.
func (d Dims) Other() Dims {
	if d == X {
		return Y
	}
	return X
}

// String implements the [fmt.Stringer] interface.
func (d Dims) String() string {
	if d == X {
		return "X"
	}
	return "Y"
}
