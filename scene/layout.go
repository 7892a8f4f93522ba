// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/weft-ui/weft/base/errors"
	"github.com/weft-ui/weft/math32"
	"github.com/weft-ui/weft/styles"
)

// Layouter is the interface for items that arrange children. The core
// functionality is defined on [LayoutBase]; concrete layouts implement
// Consolidate and Relayout.
type Layouter interface {
	ScreenItem

	// AsLayout returns the [LayoutBase] of this layout.
	AsLayout() *LayoutBase

	// Consolidate computes the layout's implicit claim from the claims
	// of its current children. It must be pure and deterministic.
	Consolidate() styles.Claim

	// Relayout distributes the given granted size among the visible
	// children: it writes each child's layout transform and sets each
	// child's size, clamped through the child's claim. It must be pure
	// and deterministic. It does not recurse; the layout driver does.
	Relayout(grant math32.Vector2)

	// ChildTreeChanged records that an item somewhere below this
	// layout was added or changed, so the claim must be consolidated
	// again on the next pass.
	ChildTreeChanged(child Item)
}

// AsLayout returns the given item as a [*LayoutBase], or nil if it is
// not a [Layouter].
func AsLayout(it Item) *LayoutBase {
	if l, ok := it.(Layouter); ok {
		return l.AsLayout()
	}
	return nil
}

// LayoutBase provides the claim bookkeeping shared by all layouts.
// Concrete layouts embed it and implement [Layouter.Consolidate] and
// [Layouter.Relayout].
type LayoutBase struct {
	ScreenItemBase

	// explicit, if non-nil, fixes the layout's claim regardless of its
	// children. See [LayoutBase.SetExplicitClaim].
	explicit *styles.Claim

	// needsClaim records that the subtree changed and the claim must
	// be consolidated again.
	needsClaim bool
}

func (lb *LayoutBase) AsLayout() *LayoutBase { return lb }

func (lb *LayoutBase) Init() {
	lb.ScreenItemBase.Init()
	lb.needsClaim = true
}

func (lb *LayoutBase) ChildTreeChanged(child Item) { lb.needsClaim = true }

// SetExplicitClaim fixes the layout's claim to the given value,
// disabling consolidation from children.
func (lb *LayoutBase) SetExplicitClaim(c styles.Claim) {
	lb.explicit = &c
	lb.needsClaim = true
}

// ClearExplicitClaim reverts the layout to an implicit claim
// consolidated from its children.
func (lb *LayoutBase) ClearExplicitClaim() {
	lb.explicit = nil
	lb.needsClaim = true
}

// refreshClaim recomputes the layout's claim (explicit or
// consolidated) and stores it, returning whether it changed. It is a
// no-op unless the subtree or a child claim changed since the last
// refresh; see [Layouter.ChildTreeChanged] and the claim change
// listener installed by [ScreenItemBase.Init].
func (lb *LayoutBase) refreshClaim() bool {
	if !lb.needsClaim {
		return false
	}
	lb.needsClaim = false
	var c styles.Claim
	if lb.explicit != nil {
		c = *lb.explicit
	} else {
		c = lb.This.(Layouter).Consolidate()
	}
	if c == lb.Claim.Value() {
		return false
	}
	errors.Log(lb.Claim.Set(c))
	return true
}

// Negotiate recomputes this layout's claim and, while the claim keeps
// changing, the ancestors' claims, stopping at the first ancestor
// whose claim comes out unchanged. It then relays out downward from
// the stopping point with that item's current granted size. This is
// the incremental path; [LayoutPass] runs the whole tree.
func (lb *LayoutBase) Negotiate() {
	cur := lb
	for cur.refreshClaim() {
		pl := parentLayout(cur.This)
		if pl == nil {
			break
		}
		cur = pl
	}
	relayoutTree(cur.This.(Layouter))
}

// parentLayout returns the nearest ancestor of the given item that is
// a [Layouter], or nil.
func parentLayout(it Item) *LayoutBase {
	for p := it.AsItem().Parent; p != nil; p = p.AsItem().Parent {
		if pl := AsLayout(p); pl != nil {
			return pl
		}
	}
	return nil
}

// LayoutPass consolidates claims bottom-up and relays out top-down
// over the whole tree rooted at the given layout. It repeats while
// claims keep changing, up to the configured pass cap.
func LayoutPass(root Layouter) {
	max := MaxRelayoutPasses()
	for pass := 0; pass < max; pass++ {
		changed := false
		root.AsItem().WalkDownPost(
			func(it Item) bool { return true },
			func(it Item) bool {
				if l, ok := it.(Layouter); ok && l.AsLayout().refreshClaim() {
					changed = true
				}
				return true
			})
		relayoutTree(root)
		if !changed {
			return
		}
	}
}

// relayoutTree runs the layout's relayout with its current granted
// size, recurses into child layouts, and finally unions the content
// boxes of the visible children. The granted size itself is not
// re-clamped here: clamping through a claim is the parent's job when
// it grants, and the root's grant comes from outside.
func relayoutTree(l Layouter) {
	lb := l.AsLayout()
	l.Relayout(lb.Size.Value())
	for _, kid := range lb.Children {
		if kl, ok := kid.(Layouter); ok {
			relayoutTree(kl)
		}
	}
	lb.updateContentBox()
}

// updateContentBox sets the item's content box to the union of its
// visible children's transformed content boxes, or its own size rect
// if it has no such children.
func (sb *ScreenItemBase) updateContentBox() {
	box := math32.B2Empty()
	for _, kid := range sb.Children {
		kb := AsScreenItem(kid)
		if kb == nil || !kb.Visible.Value() {
			continue
		}
		cb := kb.ContentBox
		if cb.IsEmpty() {
			cb = math32.B2(0, 0, kb.Size.Value().X, kb.Size.Value().Y)
		}
		box.ExpandByBox(cb.MulMatrix2(kb.ParentTransform()))
	}
	if box.IsEmpty() {
		box = math32.B2(0, 0, sb.Size.Value().X, sb.Size.Value().Y)
	}
	sb.ContentBox = box
}

// visibleScreenChildren returns the children that participate in
// layout: screen items whose own visibility flag is set.
func (sb *ScreenItemBase) visibleScreenChildren() []*ScreenItemBase {
	var kids []*ScreenItemBase
	for _, kid := range sb.Children {
		if kb := AsScreenItem(kid); kb != nil && kb.Visible.Value() {
			kids = append(kids, kb)
		}
	}
	return kids
}
