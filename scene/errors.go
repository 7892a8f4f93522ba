// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "fmt"

// DisjointError is the error returned when a coordinate transform is
// requested between two items that do not share a common ancestor.
type DisjointError struct {
	// From and To are the two items with no common ancestor.
	From Item
	To   Item
}

func (e *DisjointError) Error() string {
	return fmt.Sprintf("scene: no common ancestor between %s and %s", e.From.AsItem().Path(), e.To.AsItem().Path())
}

// NotAncestorError is the error returned when an operation requires an
// ancestor relationship that does not hold, such as setting a scissor
// to an item outside the ancestry.
type NotAncestorError struct {
	// Item is the item the operation was invoked on.
	Item Item

	// Ancestor is the item that is not actually an ancestor.
	Ancestor Item
}

func (e *NotAncestorError) Error() string {
	return fmt.Sprintf("scene: %s is not an ancestor of %s", e.Ancestor.AsItem().Path(), e.Item.AsItem().Path())
}
