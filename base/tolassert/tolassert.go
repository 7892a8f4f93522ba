// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality
// of numbers with tolerance (ie: approximate equality).
package tolassert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Equal asserts that the given two numbers are within 0.001 of each other.
func Equal[T float32 | float64](t *testing.T, expected T, actual T, msgAndArgs ...any) bool {
	return EqualTol(t, expected, actual, 0.001, msgAndArgs...)
}

// EqualTol asserts that the given two numbers are within the
// given tolerance of each other.
func EqualTol[T float32 | float64](t *testing.T, expected T, actual T, tol T, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDelta(t, expected, actual, float64(tol), msgAndArgs...)
}

// EqualTolSlice asserts that each element of the given slices are
// within the given tolerance of each other.
func EqualTolSlice[T float32 | float64](t *testing.T, expected []T, actual []T, tol T) bool {
	t.Helper()
	if !assert.Equal(t, len(expected), len(actual)) {
		return false
	}
	ok := true
	for i, ev := range expected {
		if !EqualTol(t, ev, actual[i], tol, "element", i) {
			ok = false
		}
	}
	return ok
}
