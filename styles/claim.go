// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package styles

import (
	"fmt"
	"log/slog"

	"github.com/weft-ui/weft/math32"
)

// Claim describes the size demands of a scene item: one [Stretch] per
// axis plus an optional aspect-ratio range that constrains the
// height / width ratio of the granted size. Claims are plain values;
// layouts combine them with [Claim.Add] and [Claim.Maximize] under
// layout-specific rules.
type Claim struct {

	// Horizontal is the stretch along the horizontal axis.
	Horizontal Stretch

	// Vertical is the stretch along the vertical axis.
	Vertical Stretch

	// RatioMin is the lower bound of the height / width ratio band.
	// Both ratio bounds at zero means no ratio constraint.
	RatioMin float32

	// RatioMax is the upper bound of the height / width ratio band,
	// >= RatioMin.
	RatioMax float32
}

// NewClaim returns a default [Claim] with default stretches on both
// axes and no ratio constraint.
func NewClaim() Claim {
	return Claim{Horizontal: NewStretch(), Vertical: NewStretch()}
}

// FixedClaim returns a [Claim] pinned to the given width and height.
func FixedClaim(width, height float32) Claim {
	return Claim{Horizontal: FixedStretch(width), Vertical: FixedStretch(height)}
}

// Stretch returns the stretch along the given axis.
func (c *Claim) Stretch(dim math32.Dims) *Stretch {
	if dim == math32.X {
		return &c.Horizontal
	}
	return &c.Vertical
}

// HasRatio returns whether the ratio constraint is active.
func (c *Claim) HasRatio() bool {
	return c.RatioMax > 0
}

// SetRatioRange sets the aspect-ratio band to [lo, hi], re-normalizing
// as needed: invalid values (NaN, negative) are clamped with a
// warning, and swapped bounds are reordered. Setting both bounds to
// zero removes the constraint.
func (c *Claim) SetRatioRange(lo, hi float32) *Claim {
	lo = sanitizeRatio("ratioMin", lo)
	hi = sanitizeRatio("ratioMax", hi)
	if lo > hi {
		lo, hi = hi, lo
	}
	c.RatioMin = lo
	c.RatioMax = hi
	return c
}

// SetRatio sets the aspect-ratio band to the single given ratio.
func (c *Claim) SetRatio(ratio float32) *Claim {
	return c.SetRatioRange(ratio, ratio)
}

// Apply grants the given size against this claim: each axis is clamped
// to its [Min, Max] range, and if the ratio constraint is active and
// the clamped rectangle has positive area, the width (and failing
// that, the height) is adjusted within its bounds until height / width
// lies inside the ratio band. If no valid adjustment exists the
// clamped rectangle is returned as-is. Apply is idempotent.
func (c *Claim) Apply(size math32.Vector2) math32.Vector2 {
	w := c.Horizontal.Clamp(size.X)
	h := c.Vertical.Clamp(size.Y)
	if !c.HasRatio() || w <= 0 || h <= 0 {
		return math32.Vec2(w, h)
	}
	switch ratio := h / w; {
	case c.RatioMin > 0 && ratio < c.RatioMin:
		// too wide; narrow the width, then raise the height
		w = c.Horizontal.Clamp(h / c.RatioMin)
		if h/w < c.RatioMin {
			h = c.Vertical.Clamp(w * c.RatioMin)
		}
	case ratio > c.RatioMax:
		// too tall; widen the width, then lower the height
		w = c.Horizontal.Clamp(h / c.RatioMax)
		if h/w > c.RatioMax {
			h = c.Vertical.Clamp(w * c.RatioMax)
		}
	}
	return math32.Vec2(w, h)
}

// Add makes this claim the result of placing the other given claim
// beside it along the given axis: the stretches along that axis add,
// the stretches across it maximize, and the ratio constraint is
// dropped, since it cannot be aggregated meaningfully.
func (c *Claim) Add(dim math32.Dims, o Claim) {
	c.Stretch(dim).Add(*o.Stretch(dim))
	c.Stretch(dim.Other()).Maximize(*o.Stretch(dim.Other()))
	c.RatioMin = 0
	c.RatioMax = 0
}

// Maximize makes this claim the field-wise maximum of itself and the
// other given claim, as used when items overlap on both axes. The
// ratio constraint is dropped.
func (c *Claim) Maximize(o Claim) {
	c.Horizontal.Maximize(o.Horizontal)
	c.Vertical.Maximize(o.Vertical)
	c.RatioMin = 0
	c.RatioMax = 0
}

// String implements the [fmt.Stringer] interface.
func (c Claim) String() string {
	if c.HasRatio() {
		return fmt.Sprintf("Claim(h: %v, v: %v, ratio [%g, %g])", c.Horizontal, c.Vertical, c.RatioMin, c.RatioMax)
	}
	return fmt.Sprintf("Claim(h: %v, v: %v)", c.Horizontal, c.Vertical)
}

// sanitizeRatio replaces NaN and negative ratios by the nearest valid
// value, with a warning.
func sanitizeRatio(field string, v float32) float32 {
	if math32.IsNaN(v) {
		slog.Warn("styles.Claim: NaN ratio replaced by 0", "field", field)
		return 0
	}
	if v < 0 {
		slog.Warn("styles.Claim: negative ratio replaced by 0", "field", field, "value", v)
		return 0
	}
	return v
}
