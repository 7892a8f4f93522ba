// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"strings"

	"github.com/jinzhu/copier"

	"github.com/weft-ui/weft/base/errors"
)

// ItemBase implements the [Item] interface and provides the core
// functionality for scene tree items. You must use ItemBase as an
// embedded struct in all higher-level item types.
type ItemBase struct {
	// Name is the name of this item, which is typically unique relative
	// to other children of the same parent. It is used for finding and
	// serializing items. If not otherwise set, it defaults to the ID
	// (kebab-case) name of the type combined with the total number of
	// children that have ever been added to the parent.
	Name string

	// This is the value of this item as its true underlying type. This
	// allows methods defined on base types to call methods defined on
	// higher-level types. It is set by [New] and is otherwise read-only.
	This Item `copier:"-" json:"-"`

	// Parent is the parent of this item, which is set automatically
	// when it is added as a child of a parent. It is read-only; to
	// change it, use [MoveToParent].
	Parent Item `copier:"-" json:"-"`

	// Children is the list of children of this item. It is read-only;
	// use the child management methods to modify it.
	Children []Item `copier:"-" json:"-"`

	// Properties is an optional property map for arbitrary extension
	// data. It is nil until the first [ItemBase.SetProperty].
	Properties map[string]any `copier:"-"`

	// id is the process-lifetime-unique identifier of this item.
	id uint64

	// numLifetimeChildren is the number of children that have ever been
	// added to this item, used for auto-naming.
	numLifetimeChildren uint64
}

func (ib *ItemBase) AsItem() *ItemBase { return ib }

func (ib *ItemBase) Init()  {}
func (ib *ItemBase) OnAdd() {}

// ID returns the unique identifier of this item. Identifiers are
// assigned from a process-wide monotonic counter and are never reused.
func (ib *ItemBase) ID() uint64 { return ib.id }

// onChildAdded walks up the tree notifying each [ItemBase] that a
// child was added somewhere below it, so that layouts can mark
// themselves for re-claiming.
func (ib *ItemBase) onChildAdded(child Item) {
	ib.WalkUp(func(it Item) bool {
		if li, ok := it.(Layouter); ok {
			li.ChildTreeChanged(child)
		}
		return true
	})
}

// String implements the [fmt.Stringer] interface by returning the path
// of the item.
func (ib *ItemBase) String() string {
	if ib == nil || ib.This == nil {
		return "nil"
	}
	return ib.Path()
}

// NumChildren returns the number of children this item has.
func (ib *ItemBase) NumChildren() int { return len(ib.Children) }

// HasChildren returns whether this item has any children.
func (ib *ItemBase) HasChildren() bool { return len(ib.Children) > 0 }

// Child returns the child of this item at the given index, or nil if
// the index is out of range.
func (ib *ItemBase) Child(i int) Item {
	if i < 0 || i >= len(ib.Children) {
		return nil
	}
	return ib.Children[i]
}

// ChildByName returns the first child of this item with the given
// name, or nil if there is none.
func (ib *ItemBase) ChildByName(name string) Item {
	if i := IndexByName(ib.Children, name); i >= 0 {
		return ib.Children[i]
	}
	return nil
}

// AddChild adds the given item as the last child of this item. The
// child must not already have a parent.
func (ib *ItemBase) AddChild(child Item) {
	if cb := child.AsItem(); cb.Parent != nil {
		errors.Log(fmt.Errorf("scene.AddChild: child %s already has a parent %s", cb.Name, cb.Parent.AsItem().Name))
		return
	}
	initItem(child)
	ib.Children = append(ib.Children, child)
	setParent(child, ib)
}

// InsertChild adds the given item as a child of this item at the given
// index. The child must not already have a parent.
func (ib *ItemBase) InsertChild(child Item, i int) {
	if cb := child.AsItem(); cb.Parent != nil {
		errors.Log(fmt.Errorf("scene.InsertChild: child %s already has a parent %s", cb.Name, cb.Parent.AsItem().Name))
		return
	}
	if i < 0 || i > len(ib.Children) {
		i = len(ib.Children)
	}
	initItem(child)
	ib.Children = append(ib.Children, nil)
	copy(ib.Children[i+1:], ib.Children[i:])
	ib.Children[i] = child
	setParent(child, ib)
}

// DeleteChildAt removes the child at the given index from this item's
// children and destroys it. It returns whether the index was valid.
func (ib *ItemBase) DeleteChildAt(i int) bool {
	child := ib.Child(i)
	if child == nil {
		return false
	}
	ib.Children = append(ib.Children[:i], ib.Children[i+1:]...)
	child.AsItem().Parent = nil
	child.Destroy()
	return true
}

// DeleteChild removes the given child from this item's children and
// destroys it. It returns whether the child was found.
func (ib *ItemBase) DeleteChild(child Item) bool {
	if child == nil {
		return false
	}
	return ib.DeleteChildAt(IndexOf(ib.Children, child))
}

// DeleteChildByName removes the first child with the given name from
// this item's children and destroys it, returning whether it was found.
func (ib *ItemBase) DeleteChildByName(name string) bool {
	return ib.DeleteChildAt(IndexByName(ib.Children, name))
}

// DeleteChildren removes and destroys all of this item's children.
func (ib *ItemBase) DeleteChildren() {
	kids := ib.Children
	ib.Children = nil
	for _, kid := range kids {
		kid.AsItem().Parent = nil
		kid.Destroy()
	}
}

// Destroy removes this item from its parent and recursively destroys
// all of its children. The item must not be used after this.
func (ib *ItemBase) Destroy() {
	if ib.Parent != nil {
		pb := ib.Parent.AsItem()
		if i := IndexOf(pb.Children, ib.This); i >= 0 {
			pb.Children = append(pb.Children[:i], pb.Children[i+1:]...)
		}
		ib.Parent = nil
	}
	ib.DeleteChildren()
	ib.This = nil
}

// HasAncestor returns whether this item has the given item as an
// ancestor (including itself).
func (ib *ItemBase) HasAncestor(anc Item) bool {
	found := false
	ib.WalkUp(func(it Item) bool {
		if it == anc {
			found = true
			return false
		}
		return true
	})
	return found
}

// Path returns the path to this item from the root of its tree, using
// names with / and \ escaped (see [EscapePathName]).
func (ib *ItemBase) Path() string {
	if ib.Parent != nil {
		return ib.Parent.AsItem().Path() + "/" + EscapePathName(ib.Name)
	}
	return "/" + EscapePathName(ib.Name)
}

// PathFrom returns the path to this item from the given parent item,
// which must be an ancestor of this item.
func (ib *ItemBase) PathFrom(parent Item) string {
	if ib.This == parent {
		return ""
	}
	if ib.Parent == nil {
		return EscapePathName(ib.Name)
	}
	pp := ib.Parent.AsItem().PathFrom(parent)
	if pp == "" {
		return EscapePathName(ib.Name)
	}
	return pp + "/" + EscapePathName(ib.Name)
}

// FindPath returns the item at the given path from this item, or nil
// if it cannot be found. Paths are as produced by [ItemBase.PathFrom].
func (ib *ItemBase) FindPath(path string) Item {
	cur := ib.This
	for _, part := range splitPath(strings.TrimPrefix(path, "/")) {
		if part == "" {
			continue
		}
		next := cur.AsItem().ChildByName(UnescapePathName(part))
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// WalkUp calls the given function on this item and all of its
// ancestors, from this item up. It stops if the function returns
// false.
func (ib *ItemBase) WalkUp(fun func(it Item) bool) {
	for cur := ib.This; cur != nil; cur = cur.AsItem().Parent {
		if !fun(cur) {
			return
		}
	}
}

// WalkUpParent is like [ItemBase.WalkUp] but starts at this item's
// parent instead of this item.
func (ib *ItemBase) WalkUpParent(fun func(it Item) bool) {
	if ib.Parent == nil {
		return
	}
	ib.Parent.AsItem().WalkUp(fun)
}

// WalkDown calls the given function on this item and all of its
// descendants in depth-first pre order. If the function returns false
// for an item, its children are not visited.
func (ib *ItemBase) WalkDown(fun func(it Item) bool) {
	if ib.This == nil {
		return
	}
	if !fun(ib.This) {
		return
	}
	for _, kid := range ib.Children {
		kid.AsItem().WalkDown(fun)
	}
}

// WalkDownPost calls the given functions on this item and all of its
// descendants in depth-first post order: shouldContinue controls
// descent on the way down, and fun is called on the way back up. It
// visits children before their parent.
func (ib *ItemBase) WalkDownPost(shouldContinue func(it Item) bool, fun func(it Item) bool) {
	if ib.This == nil {
		return
	}
	if !shouldContinue(ib.This) {
		return
	}
	for _, kid := range ib.Children {
		kid.AsItem().WalkDownPost(shouldContinue, fun)
	}
	fun(ib.This)
}

// WalkDownBreadth calls the given function on this item and all of its
// descendants in breadth-first order. If the function returns false
// for an item, its children are not visited.
func (ib *ItemBase) WalkDownBreadth(fun func(it Item) bool) {
	queue := []Item{ib.This}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == nil || !fun(cur) {
			continue
		}
		queue = append(queue, cur.AsItem().Children...)
	}
}

// SetProperty sets the given named property on this item.
func (ib *ItemBase) SetProperty(key string, value any) {
	if ib.Properties == nil {
		ib.Properties = map[string]any{}
	}
	ib.Properties[key] = value
}

// Property returns the given named property of this item, or nil if
// it is not set.
func (ib *ItemBase) Property(key string) any { return ib.Properties[key] }

// DeleteProperty deletes the given named property from this item.
func (ib *ItemBase) DeleteProperty(key string) { delete(ib.Properties, key) }

// CopyFieldsFrom copies the fields of the given item into this item,
// excluding identity and tree-structure fields. Item types that add
// fields not handled by [copier] must override this.
func (ib *ItemBase) CopyFieldsFrom(from Item) {
	// copier writes the embedded ItemBase wholesale, which would carry
	// over the source's identity and tree fields; keep ours
	this, parent, children := ib.This, ib.Parent, ib.Children
	id, nlc := ib.id, ib.numLifetimeChildren
	errors.Log(copier.CopyWithOption(ib.This, from, copier.Option{DeepCopy: true}))
	ib.This, ib.Parent, ib.Children = this, parent, children
	ib.id, ib.numLifetimeChildren = id, nlc
	fb := from.AsItem()
	if fb.Properties != nil {
		ib.Properties = make(map[string]any, len(fb.Properties))
		for k, v := range fb.Properties {
			ib.Properties[k] = v
		}
	}
}

// CopyFrom copies the fields and child subtree of the given item into
// this item. Existing children of this item are destroyed first. The
// copies are deep: no property bodies or handles are shared with the
// source tree.
func (ib *ItemBase) CopyFrom(from Item) {
	ib.This.CopyFieldsFrom(from)
	ib.DeleteChildren()
	for _, kid := range from.AsItem().Children {
		nk := cloneItem(kid)
		nk.AsItem().Name = kid.AsItem().Name
		ib.AddChild(nk)
	}
}

// Clone returns a deep copy of this item and its subtree. The clone
// has fresh identifiers and no parent.
func (ib *ItemBase) Clone() Item { return cloneItem(ib.This) }

// cloneItem returns a fresh item of the same underlying type as the
// given item, with fields and subtree copied from it.
func cloneItem(from Item) Item {
	nb := from.AsItem().newOfType(from)
	nb.AsItem().Name = from.AsItem().Name
	nb.CopyFieldsFrom(from)
	for _, kid := range from.AsItem().Children {
		nk := cloneItem(kid)
		nk.AsItem().Name = kid.AsItem().Name
		nb.AsItem().AddChild(nk)
	}
	return nb
}
