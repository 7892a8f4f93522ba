// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package property

import "fmt"

// CycleError is the error returned when installing an expression would
// create a dependency cycle. The offending change is rejected and the
// graph is left unchanged.
type CycleError struct {
	// Property is the property the expression was to be installed on.
	Property AnyProperty
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("property: expression on property %d would create a dependency cycle", e.Property.ID())
}

// ValidationError is the error returned when a validator rejects a
// value, either one set directly or one produced by an expression
// during propagation. The whole transaction is rolled back and the
// graph is left unchanged.
type ValidationError struct {
	// Property is the property whose validator rejected the value.
	Property AnyProperty

	// Err is the error returned by the validator.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("property: validator rejected value for property %d: %v", e.Property.ID(), e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
