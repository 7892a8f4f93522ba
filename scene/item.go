// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the retained scene-item tree: a strict
// ownership tree of [Item]s, the [ScreenItem]s that carry the visual
// properties (transforms, size, opacity, claim), and the [Layouter]s
// that negotiate sizes with their children through [styles.Claim]s
// and grants.
package scene

import (
	"reflect"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode"
)

// Item is the interface that all scene tree items satisfy. The core
// functionality is defined on [ItemBase], which all higher-level item
// types must embed. This interface only contains the functionality
// that higher-level types may need to override; call [Item.AsItem]
// to access the rest.
type Item interface {

	// AsItem returns the [ItemBase] of this Item.
	AsItem() *ItemBase

	// Init is called when the item is first initialized, before it is
	// added to the tree. It is called only once in the lifetime of
	// the item. It does nothing by default.
	Init()

	// OnAdd is called when the item is added to a parent. It does
	// nothing by default.
	OnAdd()

	// Destroy recursively removes the item from its parent and
	// destroys it and all of its descendants. Item types can
	// implement this to do additional teardown; if they do, they must
	// call [ItemBase.Destroy] at the end of their implementation.
	Destroy()

	// CopyFieldsFrom copies the fields of the item from the given
	// item; see [ItemBase.CopyFieldsFrom].
	CopyFieldsFrom(from Item)
}

// nextItemID is the process-wide monotonic source of item
// identifiers. Identifiers are unique for the lifetime of the process
// and never reused.
var nextItemID atomic.Uint64

// New returns a new item of the given type, adding it to the given
// parent if one is specified. If no name is specified, the item is
// named after its type and the number of children its parent has ever
// had.
func New[T Item](parent ...Item) T {
	var n T
	item := reflect.New(reflect.TypeOf(n).Elem()).Interface().(T)
	initItem(item)
	if len(parent) > 0 && parent[0] != nil {
		parent[0].AsItem().AddChild(item)
	} else {
		item.AsItem().Name = typeIDName(item)
	}
	return item
}

// initItem sets up the item's This pointer and identity and calls
// [Item.Init], if that has not already happened.
func initItem(item Item) {
	ib := item.AsItem()
	if ib.This == item {
		return
	}
	ib.This = item
	ib.id = nextItemID.Add(1)
	item.Init()
}

// setParent sets the parent of the given child, names it if it has no
// name, and runs the OnAdd notification. The child must not already
// be on another tree; see [MoveToParent] for that.
func setParent(child Item, parent *ItemBase) {
	cb := child.AsItem()
	cb.Parent = parent.This
	parent.numLifetimeChildren++
	if cb.Name == "" {
		cb.Name = typeIDName(child) + "-" + strconv.FormatUint(parent.numLifetimeChildren-1, 10)
	}
	child.OnAdd()
	parent.onChildAdded(child)
}

// MoveToParent removes the given item from its current parent and
// adds it as a child of the given new parent. The old and new parents
// can be in different trees (or none). Scissors pointing outside the
// item's new ancestry are cleared; see [ScreenItemBase.Scissor].
func MoveToParent(child Item, parent Item) {
	cb := child.AsItem()
	if cb.Parent != nil {
		pb := cb.Parent.AsItem()
		if i := IndexOf(pb.Children, child); i >= 0 {
			pb.Children = append(pb.Children[:i], pb.Children[i+1:]...)
		}
		cb.Parent = nil
	}
	parent.AsItem().AddChild(child)
}

// IsRoot returns whether the given item is the root of its tree.
func IsRoot(item Item) bool {
	return item.AsItem().Parent == nil
}

// Root returns the root item of the given item's tree.
func Root(item Item) Item {
	ib := item.AsItem()
	if ib.Parent == nil {
		return ib.This
	}
	return Root(ib.Parent)
}

// newOfType returns a new initialized item of the same underlying
// type as the given item, without a parent.
func (ib *ItemBase) newOfType(from Item) Item {
	item := reflect.New(reflect.TypeOf(from).Elem()).Interface().(Item)
	initItem(item)
	return item
}

// typeIDName returns the kebab-case type name of the given item,
// without the package path (e.g., "screen-item" for *scene.ScreenItem).
func typeIDName(item Item) string {
	name := reflect.TypeOf(item).Elem().Name()
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
