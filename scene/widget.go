// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/weft-ui/weft/events"
)

// Capabilities is a bitmask of the interaction capabilities a widget
// declares at construction. Events whose capability a widget does not
// declare are not delivered to it.
type Capabilities int64

const (
	// Pressable widgets receive pointer press and release events.
	Pressable Capabilities = 1 << iota

	// Hoverable widgets receive pointer move events.
	Hoverable

	// Scrollable widgets receive scroll events.
	Scrollable

	// Focusable widgets receive key events.
	Focusable
)

// Has returns whether all of the given capabilities are present.
func (c Capabilities) Has(want Capabilities) bool { return c&want == want }

// capabilityFor returns the capability required to receive the given
// event type, or 0 if any widget may receive it.
func capabilityFor(typ events.Types) Capabilities {
	switch typ {
	case events.PointerPress, events.PointerRelease:
		return Pressable
	case events.PointerMove:
		return Hoverable
	case events.Scroll:
		return Scrollable
	case events.KeyDown, events.KeyUp:
		return Focusable
	}
	return 0
}

// Widget is the interface for leaf screen items that draw content and
// receive events. The core functionality is defined on [WidgetBase].
type Widget interface {
	ScreenItem

	// AsWidget returns the [WidgetBase] of this widget.
	AsWidget() *WidgetBase
}

// AsWidget returns the given item as a [*WidgetBase], or nil if it is
// not a [Widget].
func AsWidget(it Item) *WidgetBase {
	if w, ok := it.(Widget); ok {
		return w.AsWidget()
	}
	return nil
}

// WidgetBase implements [Widget]: a leaf [ScreenItem] with a declared
// capability set, event listeners, and an opaque paint handle.
type WidgetBase struct {
	ScreenItemBase

	// Paint is the opaque handle to this widget's paint description,
	// resolved through a resource registry and passed through to the
	// renderer untouched.
	Paint any `copier:"-"`

	// Listeners are the widget's registered event listeners, called in
	// reverse order of registration.
	Listeners events.Listeners `copier:"-"`

	capabilities Capabilities
}

func (wb *WidgetBase) AsWidget() *WidgetBase { return wb }

// CopyFieldsFrom copies the widget fields: the paint handle is shared
// (it is an opaque reference into a resource registry), the capability
// set is copied, and listeners are not carried over, as they are
// closures bound to the source widget.
func (wb *WidgetBase) CopyFieldsFrom(from Item) {
	wb.ScreenItemBase.CopyFieldsFrom(from)
	fb := AsWidget(from)
	if fb == nil {
		return
	}
	wb.Paint = fb.Paint
	wb.capabilities = fb.capabilities
}

// Declare adds the given capabilities to the widget's capability set.
// It is meant to be called at construction, typically from Init of a
// derived type.
func (wb *WidgetBase) Declare(caps Capabilities) { wb.capabilities |= caps }

// Capabilities returns the widget's declared capability set.
func (wb *WidgetBase) Capabilities() Capabilities { return wb.capabilities }

// On registers a listener for the given event type. Listeners added
// later are called first; see [events.Listeners.Call].
func (wb *WidgetBase) On(typ events.Types, fun func(e events.Event)) {
	wb.Listeners.Add(typ, fun)
}

// HandleEvent delivers the given event to this widget's listeners, if
// the widget declares the capability the event type requires. The
// caller can check [events.Event.IsHandled] afterward.
func (wb *WidgetBase) HandleEvent(e events.Event) {
	if need := capabilityFor(e.Type()); need != 0 && !wb.capabilities.Has(need) {
		return
	}
	wb.Listeners.Call(e)
}
