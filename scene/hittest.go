// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/weft-ui/weft/events"
	"github.com/weft-ui/weft/math32"
)

// WidgetsAt returns the visible widgets under the given point, in
// front-to-back order. The point is in the given item's local
// coordinates; children are visited in reverse insertion order, with
// the point transformed into each child's space on the way down.
func WidgetsAt(it Item, pt math32.Vector2) []*WidgetBase {
	var hits []*WidgetBase
	collectWidgetsAt(it, pt, &hits)
	return hits
}

func collectWidgetsAt(it Item, pt math32.Vector2, hits *[]*WidgetBase) {
	sb := AsScreenItem(it)
	if sb == nil || !sb.IsVisible() {
		return
	}
	kids := it.AsItem().Children
	for i := len(kids) - 1; i >= 0; i-- {
		kb := AsScreenItem(kids[i])
		if kb == nil {
			continue
		}
		cpt := kb.ParentTransform().Inverse().MulVector2AsPoint(pt)
		collectWidgetsAt(kids[i], cpt, hits)
	}
	if wb := AsWidget(it); wb != nil {
		sz := wb.Size.Value()
		if math32.B2(0, 0, sz.X, sz.Y).ContainsPoint(pt) {
			*hits = append(*hits, wb)
		}
	}
}

// WidgetAtPath returns the widget at the given path from the given
// item, or nil if there is none or the item there is not a widget.
func WidgetAtPath(it Item, path string) *WidgetBase {
	found := it.AsItem().FindPath(path)
	if found == nil {
		return nil
	}
	return AsWidget(found)
}

// DeliverAt delivers the given event to the widgets under its
// position, front to back, stopping at the first widget that marks it
// handled. The event position is in window coordinates. It returns
// the widget that handled the event, or nil.
func DeliverAt(root Item, e events.Event) *WidgetBase {
	rb := AsScreenItem(root)
	if rb == nil {
		return nil
	}
	pt := rb.WindowTransform().Inverse().MulVector2AsPoint(e.Pos())
	for _, wb := range WidgetsAt(root, pt) {
		wb.HandleEvent(e)
		if e.IsHandled() {
			return wb
		}
	}
	return nil
}
