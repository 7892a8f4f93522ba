// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the external event objects delivered to
// widgets, and the listener registries widgets use to handle them.
// The core does not dispatch events itself; an input layer resolves
// the target widget (typically through hit-testing) and hands the
// event over.
package events

import (
	"fmt"

	"github.com/weft-ui/weft/math32"
)

// Types is the list of event types.
type Types int32

const (
	// UnknownType is an unset event type.
	UnknownType Types = iota

	// PointerPress is a button or touch press.
	PointerPress

	// PointerRelease is a button or touch release.
	PointerRelease

	// PointerMove is a pointer movement.
	PointerMove

	// Scroll is a scroll wheel or gesture movement.
	Scroll

	// KeyDown is a key press.
	KeyDown

	// KeyUp is a key release.
	KeyUp

	// Custom is an application-defined event carrying arbitrary data.
	Custom
)

func (t Types) String() string {
	switch t {
	case PointerPress:
		return "PointerPress"
	case PointerRelease:
		return "PointerRelease"
	case PointerMove:
		return "PointerMove"
	case Scroll:
		return "Scroll"
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	case Custom:
		return "Custom"
	}
	return "UnknownType"
}

// Event is the interface for all events.
type Event interface {
	// Type returns the type of the event.
	Type() Types

	// Pos returns the position of the event in window coordinates,
	// for events that have one.
	Pos() math32.Vector2

	// IsHandled returns whether the event has been marked as handled,
	// which ends its dispatch.
	IsHandled() bool

	// SetHandled marks the event as handled.
	SetHandled()
}

// Base is the base implementation of [Event], suitable for embedding.
type Base struct {
	// Typ is the type of the event.
	Typ Types

	// Where is the event position in window coordinates.
	Where math32.Vector2

	handled bool
}

// NewBase returns a new [Base] event of the given type at the
// given position.
func NewBase(typ Types, pos math32.Vector2) *Base {
	return &Base{Typ: typ, Where: pos}
}

func (e *Base) Type() Types         { return e.Typ }
func (e *Base) Pos() math32.Vector2 { return e.Where }
func (e *Base) IsHandled() bool     { return e.handled }
func (e *Base) SetHandled()         { e.handled = true }

func (e *Base) String() string {
	return fmt.Sprintf("%v@%v", e.Typ, e.Where)
}

// CustomEvent is an application-defined event carrying arbitrary data.
type CustomEvent struct {
	Base

	// Data is the event payload.
	Data any
}

// NewCustom returns a new [CustomEvent] with the given payload.
func NewCustom(data any) *CustomEvent {
	return &CustomEvent{Base: Base{Typ: Custom}, Data: data}
}

// Listeners registers lists of event listener functions to receive
// different event types. Listeners are closure methods with all
// context captured, registered on specific objects.
type Listeners map[Types][]func(e Event)

// Add adds a listener for the given type.
func (ls *Listeners) Add(typ Types, fun func(e Event)) {
	if *ls == nil {
		*ls = make(map[Types][]func(Event))
	}
	(*ls)[typ] = append((*ls)[typ], fun)
}

// Call calls all the listeners for the given event. It goes in reverse
// order, so the last listeners added are the first called, and it
// stops when the event is marked as handled. This allows for a natural
// override behavior without explicit priorities.
func (ls *Listeners) Call(e Event) {
	if e.IsHandled() {
		return
	}
	ets := (*ls)[e.Type()]
	for i := len(ets) - 1; i >= 0; i-- {
		ets[i](e)
		if e.IsHandled() {
			break
		}
	}
}
