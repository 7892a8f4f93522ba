// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/weft-ui/weft/math32"
)

// WidgetFrame is the read-only view of one visible widget handed to a
// renderer. It is a value snapshot: mutating it has no effect on the
// scene, and the renderer must not reach back into the tree.
type WidgetFrame struct {
	// Path identifies the widget within its tree.
	Path string

	// Transform is the widget's window-space transform.
	Transform math32.Matrix2

	// Size is the widget's granted size.
	Size math32.Vector2

	// Opacity is the widget's effective opacity.
	Opacity float32

	// Scissor is the active scissor rect in window coordinates; only
	// valid if HasScissor is set.
	Scissor    math32.Box2
	HasScissor bool

	// Paint is the widget's opaque paint handle.
	Paint any
}

// Frame is a per-frame snapshot of the renderable scene.
type Frame struct {
	// Widgets holds the visible widgets in back-to-front paint order.
	Widgets []WidgetFrame
}

// Snapshot collects the visible widgets below the given item into a
// [Frame], in back-to-front paint order (insertion order, depth
// first), and clears their pending redraw requests.
func Snapshot(root Item) Frame {
	var fr Frame
	root.AsItem().WalkDown(func(it Item) bool {
		sb := AsScreenItem(it)
		if sb != nil && !sb.Visible.Value() {
			return false
		}
		wb := AsWidget(it)
		if wb == nil || !wb.IsVisible() {
			return true
		}
		wf := WidgetFrame{
			Path:      wb.Path(),
			Transform: wb.WindowTransform(),
			Size:      wb.Size.Value(),
			Opacity:   wb.EffectiveOpacity(),
			Paint:     wb.Paint,
		}
		wf.Scissor, wf.HasScissor = wb.ScissorRect()
		fr.Widgets = append(fr.Widgets, wf)
		wb.needsRedraw = false
		return true
	})
	return fr
}
