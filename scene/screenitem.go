// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/weft-ui/weft/base/errors"
	"github.com/weft-ui/weft/math32"
	"github.com/weft-ui/weft/property"
	"github.com/weft-ui/weft/styles"
)

// ScreenItem is the interface for items that occupy screen space: they
// carry the visual attributes (transforms, size, opacity, claim) as
// reactive properties. The core functionality is defined on
// [ScreenItemBase].
type ScreenItem interface {
	Item

	// AsScreenItem returns the [ScreenItemBase] of this item.
	AsScreenItem() *ScreenItemBase
}

// AsScreenItem returns the given item as a [*ScreenItemBase], or nil
// if it is not a [ScreenItem].
func AsScreenItem(it Item) *ScreenItemBase {
	if si, ok := it.(ScreenItem); ok {
		return si.AsScreenItem()
	}
	return nil
}

// ScreenItemBase implements [ScreenItem]. All of its visual attributes
// are nodes in the reactive property graph, so they can be bound to
// expressions and batched like any other property.
type ScreenItemBase struct {
	ItemBase

	// Visible is the item's own visibility flag. An item whose flag is
	// false is invisible along with its whole subtree; see
	// [ScreenItemBase.IsVisible] for the full visibility rule.
	Visible *property.Property[bool] `copier:"-"`

	// Opacity is the item's own opacity, clamped to [0, 1]. Effective
	// opacity is the product along the ancestor chain.
	Opacity *property.Property[float32] `copier:"-"`

	// Size is the item's granted size, non-negative in both
	// dimensions. It is normally written by the parent layout during
	// relayout.
	Size *property.Property[math32.Vector2] `copier:"-"`

	// LayoutTransform positions the item within its parent. It is
	// written by the parent layout and should not be set directly.
	LayoutTransform *property.Property[math32.Matrix2] `copier:"-"`

	// OffsetTransform is an additional transform applied by the item
	// itself on top of the layout transform, for animation and manual
	// adjustment.
	OffsetTransform *property.Property[math32.Matrix2] `copier:"-"`

	// Claim is the item's size claim, consumed by the parent layout
	// during consolidation.
	Claim *property.Property[styles.Claim] `copier:"-"`

	// ContentBox is the axis-aligned bounding rectangle, in local
	// coordinates, of all visible content of this item and its
	// descendants. Layouts maintain it during relayout.
	ContentBox math32.Box2 `copier:"-"`

	// scissor is a non-owning reference to an ancestor whose rect
	// clips this item. Ancestry is re-checked on every use and the
	// reference is silently dropped when it no longer holds.
	scissor *ScreenItemBase

	// needsRedraw is set by [ScreenItemBase.Redraw] and cleared when a
	// frame snapshot is taken.
	needsRedraw bool
}

func (sb *ScreenItemBase) AsScreenItem() *ScreenItemBase { return sb }

func (sb *ScreenItemBase) Init() {
	sb.Visible = property.New(true)
	sb.Opacity = property.New[float32](1)
	sb.Opacity.SetValidator(func(v float32) (float32, error) {
		return math32.Clamp(v, 0, 1), nil
	})
	sb.Size = property.New(math32.Vector2{})
	sb.Size.SetValidator(func(v math32.Vector2) (math32.Vector2, error) {
		return v.Max(math32.Vector2{}), nil
	})
	sb.LayoutTransform = property.New(math32.Identity2())
	sb.OffsetTransform = property.New(math32.Identity2())
	sb.Claim = property.New(styles.NewClaim())
	sb.Claim.OnChange(func(c styles.Claim) {
		if sb.This == nil {
			return
		}
		if pl := parentLayout(sb.This); pl != nil {
			pl.needsClaim = true
		}
	})
	sb.ContentBox = math32.B2Empty()
}

// Destroy destroys the item's properties before removing it from the
// tree; see [ItemBase.Destroy].
func (sb *ScreenItemBase) Destroy() {
	sb.Visible.Destroy()
	sb.Opacity.Destroy()
	sb.Size.Destroy()
	sb.LayoutTransform.Destroy()
	sb.OffsetTransform.Destroy()
	sb.Claim.Destroy()
	sb.scissor = nil
	sb.ItemBase.Destroy()
}

// CopyFieldsFrom copies the visual attributes of the given item into
// this item. The property bodies stay distinct: only the current
// values are copied, and expressions are not carried over. The scissor
// reference is not copied, as it points into the source tree.
func (sb *ScreenItemBase) CopyFieldsFrom(from Item) {
	sb.ItemBase.CopyFieldsFrom(from)
	fb := AsScreenItem(from)
	if fb == nil {
		return
	}
	errors.Log(sb.Visible.Set(fb.Visible.Value()))
	errors.Log(sb.Opacity.Set(fb.Opacity.Value()))
	errors.Log(sb.Size.Set(fb.Size.Value()))
	errors.Log(sb.LayoutTransform.Set(fb.LayoutTransform.Value()))
	errors.Log(sb.OffsetTransform.Set(fb.OffsetTransform.Value()))
	errors.Log(sb.Claim.Set(fb.Claim.Value()))
	sb.ContentBox = fb.ContentBox
}

// SetScissor sets the given item as this item's scissor. It must be a
// [ScreenItem] ancestor of this item; otherwise a [*NotAncestorError]
// is returned and the scissor is left unchanged. Passing nil clears
// the scissor, falling back to the inherited one.
func (sb *ScreenItemBase) SetScissor(anc Item) error {
	if anc == nil {
		sb.scissor = nil
		return nil
	}
	ab := AsScreenItem(anc)
	if ab == nil || sb.This == anc || !sb.HasAncestor(anc) {
		return &NotAncestorError{Item: sb.This, Ancestor: anc}
	}
	sb.scissor = ab
	return nil
}

// Scissor returns this item's effective scissor: its own if one is set
// and still an ancestor, otherwise the parent's effective scissor. A
// scissor that is no longer an ancestor (after a reparent) is silently
// dropped.
func (sb *ScreenItemBase) Scissor() *ScreenItemBase {
	if sb.scissor != nil {
		if sb.scissor.This != nil && sb.HasAncestor(sb.scissor.This) {
			return sb.scissor
		}
		sb.scissor = nil
	}
	if sb.Parent == nil {
		return nil
	}
	if pb := AsScreenItem(sb.Parent); pb != nil {
		return pb.Scissor()
	}
	return nil
}

// ParentTransform returns the item's effective transform into its
// parent's coordinate space: the offset transform applied on top of
// the layout transform.
func (sb *ScreenItemBase) ParentTransform() math32.Matrix2 {
	return sb.OffsetTransform.Value().Mul(sb.LayoutTransform.Value())
}

// WindowTransform returns the composed transform from this item's
// local coordinates into window coordinates.
func (sb *ScreenItemBase) WindowTransform() math32.Matrix2 {
	m := sb.ParentTransform()
	for p := sb.Parent; p != nil; p = p.AsItem().Parent {
		if pb := AsScreenItem(p); pb != nil {
			m = pb.ParentTransform().Mul(m)
		}
	}
	return m
}

// TransformTo returns the transform taking this item's local
// coordinates into the given item's local coordinates, composed
// through their lowest common ancestor. It returns a
// [*DisjointError] if the two items share no ancestor.
func (sb *ScreenItemBase) TransformTo(other Item) (math32.Matrix2, error) {
	ob := AsScreenItem(other)
	if ob == nil {
		return math32.Matrix2{}, &DisjointError{From: sb.This, To: other}
	}
	lca := commonAncestor(sb.This, other)
	if lca == nil {
		return math32.Matrix2{}, &DisjointError{From: sb.This, To: other}
	}
	up := sb.transformToAncestor(lca)
	down := ob.transformToAncestor(lca)
	return down.Inverse().Mul(up), nil
}

// transformToAncestor composes parent transforms from this item up to
// (but not including) the given ancestor.
func (sb *ScreenItemBase) transformToAncestor(anc Item) math32.Matrix2 {
	m := math32.Identity2()
	for cur := sb.This; cur != nil && cur != anc; cur = cur.AsItem().Parent {
		if cb := AsScreenItem(cur); cb != nil {
			m = cb.ParentTransform().Mul(m)
		}
	}
	return m
}

// commonAncestor returns the lowest common ancestor of the two items,
// or nil if they are in different trees.
func commonAncestor(a, b Item) Item {
	seen := map[Item]bool{}
	a.AsItem().WalkUp(func(it Item) bool {
		seen[it] = true
		return true
	})
	var lca Item
	b.AsItem().WalkUp(func(it Item) bool {
		if seen[it] {
			lca = it
			return false
		}
		return true
	})
	return lca
}

// EffectiveOpacity returns the product of this item's opacity and all
// of its screen ancestors' opacities.
func (sb *ScreenItemBase) EffectiveOpacity() float32 {
	op := sb.Opacity.Value()
	for p := sb.Parent; p != nil; p = p.AsItem().Parent {
		if pb := AsScreenItem(p); pb != nil {
			op *= pb.Opacity.Value()
		}
	}
	return op
}

// ScissorRect returns the effective scissor's rect in window
// coordinates, and whether a scissor is active.
func (sb *ScreenItemBase) ScissorRect() (math32.Box2, bool) {
	sc := sb.Scissor()
	if sc == nil {
		return math32.Box2{}, false
	}
	r := math32.B2(0, 0, sc.Size.Value().X, sc.Size.Value().Y)
	return r.MulMatrix2(sc.WindowTransform()), true
}

// IsVisible returns whether this item is actually visible: its own
// flag and all ancestor flags are set, its size has positive area, its
// effective opacity exceeds the alpha cutoff, and, if a scissor is
// active, its transformed content rect intersects the scissor rect.
func (sb *ScreenItemBase) IsVisible() bool {
	for cur := sb.This; cur != nil; cur = cur.AsItem().Parent {
		if cb := AsScreenItem(cur); cb != nil && !cb.Visible.Value() {
			return false
		}
	}
	if sb.Size.Value().Area() <= 0 {
		return false
	}
	if sb.EffectiveOpacity() <= AlphaCutoff() {
		return false
	}
	if sr, ok := sb.ScissorRect(); ok {
		cb := sb.ContentBox
		if cb.IsEmpty() {
			cb = math32.B2(0, 0, sb.Size.Value().X, sb.Size.Value().Y)
		}
		if !cb.MulMatrix2(sb.WindowTransform()).IntersectsBox(sr) {
			return false
		}
	}
	return true
}

// Redraw requests a redraw of this item. It is a no-op if the item is
// not visible.
func (sb *ScreenItemBase) Redraw() {
	if !sb.IsVisible() {
		return
	}
	sb.needsRedraw = true
}

// NeedsRedraw returns whether a redraw has been requested since the
// last frame snapshot.
func (sb *ScreenItemBase) NeedsRedraw() bool { return sb.needsRedraw }
