// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weft-ui/weft/math32"
)

func TestStretchOrdering(t *testing.T) {
	s := NewStretch()
	assert.Equal(t, float32(0), s.Min)
	assert.Equal(t, float32(0), s.Preferred)
	assert.True(t, math32.IsInf(s.Max, 1))
	assert.Equal(t, float32(1), s.Scale)

	s.SetMin(10)
	assert.Equal(t, float32(10), s.Preferred) // raised to min

	s.SetPreferred(50)
	s.SetMax(100)
	assert.Equal(t, float32(10), s.Min)
	assert.Equal(t, float32(50), s.Preferred)
	assert.Equal(t, float32(100), s.Max)

	// lowering max re-clamps preferred and min
	s.SetMax(30)
	assert.Equal(t, float32(30), s.Preferred)
	assert.Equal(t, float32(10), s.Min)

	// raising min re-clamps preferred and max
	s.SetMax(100)
	s.SetMin(60)
	assert.Equal(t, float32(60), s.Preferred)
	assert.Equal(t, float32(100), s.Max)
}

func TestStretchSanitize(t *testing.T) {
	s := NewStretch()
	s.SetMin(-5)
	assert.Equal(t, float32(0), s.Min)
	s.SetPreferred(math32.Infinity * 0) // NaN
	assert.Equal(t, float32(0), s.Preferred)
	s.SetScale(-1)
	assert.Equal(t, float32(1), s.Scale)
	s.SetScale(0)
	assert.Equal(t, float32(1), s.Scale)
}

func TestStretchClamp(t *testing.T) {
	s := NewStretch()
	s.SetMin(10)
	s.SetPreferred(50)
	s.SetMax(100)

	assert.Equal(t, float32(10), s.Clamp(5))
	assert.Equal(t, float32(100), s.Clamp(200))
	assert.Equal(t, float32(30), s.Clamp(30))
}

func TestStretchAddMaximize(t *testing.T) {
	a := NewStretch()
	a.SetMin(10)
	a.SetPreferred(20)
	a.SetMax(30)
	a.SetPriority(1)

	b := NewStretch()
	b.SetMin(5)
	b.SetPreferred(15)
	b.SetMax(40)
	b.SetScale(2)

	sum := a
	sum.Add(b)
	assert.Equal(t, float32(15), sum.Min)
	assert.Equal(t, float32(35), sum.Preferred)
	assert.Equal(t, float32(70), sum.Max)
	assert.Equal(t, float32(2), sum.Scale)
	assert.Equal(t, int32(1), sum.Priority)

	// unbounded max absorbs the sum
	ub := a
	ub.Add(NewStretch())
	assert.True(t, math32.IsInf(ub.Max, 1))

	mx := a
	mx.Maximize(b)
	assert.Equal(t, float32(10), mx.Min)
	assert.Equal(t, float32(20), mx.Preferred)
	assert.Equal(t, float32(40), mx.Max)
}

func TestClaimApplyClamps(t *testing.T) {
	c := NewClaim()
	c.Horizontal.SetMin(10)
	c.Horizontal.SetPreferred(50)
	c.Horizontal.SetMax(100)
	c.Vertical = c.Horizontal

	assert.Equal(t, math32.Vec2(10, 10), c.Apply(math32.Vec2(5, 5)))
	assert.Equal(t, math32.Vec2(100, 100), c.Apply(math32.Vec2(200, 200)))
	assert.Equal(t, math32.Vec2(30, 30), c.Apply(math32.Vec2(30, 30)))
}

func TestClaimApplyRatio(t *testing.T) {
	c := NewClaim()
	c.Horizontal.SetMax(1000)
	c.Vertical.SetMax(1000)
	c.SetRatioRange(1, 2)

	// too wide: width shrinks until height/width is in band
	assert.Equal(t, math32.Vec2(100, 100), c.Apply(math32.Vec2(1000, 100)))

	// too tall: width grows until height/width is in band
	assert.Equal(t, math32.Vec2(500, 1000), c.Apply(math32.Vec2(100, 1000)))

	// in band: unchanged
	assert.Equal(t, math32.Vec2(100, 150), c.Apply(math32.Vec2(100, 150)))
}

func TestClaimApplyIdempotent(t *testing.T) {
	c := NewClaim()
	c.Horizontal.SetMin(50)
	c.Horizontal.SetMax(1000)
	c.Vertical.SetMax(40)
	c.SetRatioRange(1, 2)

	sizes := []math32.Vector2{
		{X: 200, Y: 30},
		{X: 1000, Y: 100},
		{X: 100, Y: 1000},
		{X: 5, Y: 5},
		{X: 0, Y: 0},
	}
	for _, sz := range sizes {
		once := c.Apply(sz)
		assert.Equal(t, once, c.Apply(once), "size %v", sz)
	}
}

func TestClaimRatioNormalize(t *testing.T) {
	c := NewClaim()
	c.SetRatioRange(3, 1) // swapped bounds are reordered
	assert.Equal(t, float32(1), c.RatioMin)
	assert.Equal(t, float32(3), c.RatioMax)

	c.SetRatioRange(-1, 2) // negative clamps to 0
	assert.Equal(t, float32(0), c.RatioMin)

	c.SetRatioRange(0, 0)
	assert.False(t, c.HasRatio())
}

func TestClaimAddMaximize(t *testing.T) {
	a := FixedClaim(10, 20)
	b := FixedClaim(30, 15)

	sum := a
	sum.Add(math32.Y, b) // stack vertically: heights add, widths maximize
	assert.Equal(t, float32(35), sum.Vertical.Min)
	assert.Equal(t, float32(30), sum.Horizontal.Min)

	mx := a
	mx.Maximize(b)
	assert.Equal(t, float32(30), mx.Horizontal.Min)
	assert.Equal(t, float32(20), mx.Vertical.Min)
}
