// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package styles provides the size negotiation value types used by
// scene items: the [Stretch] of a single axis and the two-axis [Claim]
// with an optional aspect-ratio range.
package styles

import (
	"fmt"
	"log/slog"

	"github.com/weft-ui/weft/math32"
)

// Stretch describes the size demands of a scene item along one axis.
// It maintains the ordering invariant 0 <= Min <= Preferred <= Max
// through its setters; mutate the fields through them, not directly.
type Stretch struct {

	// Min is the smallest usable size, >= 0.
	Min float32

	// Preferred is the size the item would like to have,
	// in [Min, Max].
	Preferred float32

	// Max is the largest usable size, in [Preferred, +Inf].
	Max float32

	// Scale is the factor by which this axis absorbs surplus space
	// relative to its siblings. It is always > 0.
	Scale float32

	// Priority determines the order in which space is offered to
	// (or taken from) siblings: higher priorities grow first and
	// shrink last.
	Priority int32
}

// defaultScale is the scale factor assigned to new stretches; see
// [SetDefaultScale].
var defaultScale float32 = 1

// SetDefaultScale sets the scale factor assigned to stretches made by
// [NewStretch] and [NewClaim]. Engine settings call this; invalid
// values are replaced by 1 with a warning.
func SetDefaultScale(v float32) {
	if math32.IsNaN(v) || v <= 0 {
		slog.Warn("styles.SetDefaultScale: invalid scale factor replaced by 1", "value", v)
		v = 1
	}
	defaultScale = v
}

// NewStretch returns a default [Stretch]: zero min and preferred size,
// unbounded max, default scale, zero priority.
func NewStretch() Stretch {
	return Stretch{Max: math32.Infinity, Scale: defaultScale}
}

// FixedStretch returns a [Stretch] pinned to the given size on all
// three bounds.
func FixedStretch(size float32) Stretch {
	size = sanitizeSize("size", size)
	return Stretch{Min: size, Preferred: size, Max: size, Scale: 1}
}

// IsFixed returns whether the stretch is pinned to a single size.
func (s *Stretch) IsFixed() bool {
	return s.Min == s.Max
}

// SetMin sets the minimum size and raises Preferred and Max as needed
// to keep the ordering invariant. Invalid values (NaN, negative) are
// clamped with a warning.
func (s *Stretch) SetMin(v float32) *Stretch {
	s.Min = sanitizeSize("min", v)
	math32.SetMax(&s.Preferred, s.Min)
	math32.SetMax(&s.Max, s.Preferred)
	return s
}

// SetPreferred sets the preferred size and adjusts Min and Max as
// needed to keep the ordering invariant. Invalid values (NaN,
// negative) are clamped with a warning.
func (s *Stretch) SetPreferred(v float32) *Stretch {
	s.Preferred = sanitizeSize("preferred", v)
	math32.SetMin(&s.Min, s.Preferred)
	math32.SetMax(&s.Max, s.Preferred)
	return s
}

// SetMax sets the maximum size and lowers Preferred and Min as needed
// to keep the ordering invariant. Invalid values (NaN, negative) are
// clamped with a warning; +Inf is valid and means unbounded.
func (s *Stretch) SetMax(v float32) *Stretch {
	if math32.IsNaN(v) || v < 0 {
		slog.Warn("styles.Stretch: invalid max replaced by nearest valid value", "value", v)
		v = math32.Max(v, 0)
		if math32.IsNaN(v) {
			v = 0
		}
	}
	s.Max = v
	math32.SetMin(&s.Preferred, s.Max)
	math32.SetMin(&s.Min, s.Preferred)
	return s
}

// SetFixed pins all three bounds to the given size.
func (s *Stretch) SetFixed(size float32) *Stretch {
	size = sanitizeSize("size", size)
	s.Min = size
	s.Preferred = size
	s.Max = size
	return s
}

// SetScale sets the scale factor, which must be positive. Invalid
// values (NaN, zero, negative) are replaced by 1 with a warning.
func (s *Stretch) SetScale(v float32) *Stretch {
	if math32.IsNaN(v) || v <= 0 {
		slog.Warn("styles.Stretch: invalid scale factor replaced by 1", "value", v)
		v = 1
	}
	s.Scale = v
	return s
}

// SetPriority sets the priority.
func (s *Stretch) SetPriority(v int32) *Stretch {
	s.Priority = v
	return s
}

// Clamp returns the given size clamped to [Min, Max].
func (s *Stretch) Clamp(size float32) float32 {
	return math32.Clamp(size, s.Min, s.Max)
}

// Add makes this stretch the sum of itself and the other given
// stretch, as used when items are placed side by side along this
// axis: bounds and preferred sizes add (an unbounded max absorbs the
// sum), and scale and priority take the larger value.
func (s *Stretch) Add(o Stretch) {
	s.Min += o.Min
	s.Preferred += o.Preferred
	if math32.IsInf(s.Max, 1) || math32.IsInf(o.Max, 1) {
		s.Max = math32.Infinity
	} else {
		s.Max += o.Max
	}
	s.Scale = math32.Max(s.Scale, o.Scale)
	s.Priority = max(s.Priority, o.Priority)
}

// Maximize makes this stretch the field-wise maximum of itself and
// the other given stretch, as used when items overlap along this axis.
func (s *Stretch) Maximize(o Stretch) {
	math32.SetMax(&s.Min, o.Min)
	math32.SetMax(&s.Preferred, o.Preferred)
	math32.SetMax(&s.Max, o.Max)
	s.Scale = math32.Max(s.Scale, o.Scale)
	s.Priority = max(s.Priority, o.Priority)
}

// String implements the [fmt.Stringer] interface.
func (s Stretch) String() string {
	return fmt.Sprintf("Stretch(%g <= %g <= %g, scale %g, priority %d)",
		s.Min, s.Preferred, s.Max, s.Scale, s.Priority)
}

// sanitizeSize replaces NaN and negative sizes by the nearest valid
// value, with a warning.
func sanitizeSize(field string, v float32) float32 {
	if math32.IsNaN(v) {
		slog.Warn("styles.Stretch: NaN replaced by 0", "field", field)
		return 0
	}
	if v < 0 {
		slog.Warn("styles.Stretch: negative size replaced by 0", "field", field, "value", v)
		return 0
	}
	return v
}
