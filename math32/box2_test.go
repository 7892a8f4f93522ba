// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBox2(t *testing.T) {
	b := B2(0, 0, 10, 20)
	assert.Equal(t, Vec2(10, 20), b.Size())
	assert.Equal(t, Vec2(5, 10), b.Center())
	assert.Equal(t, float32(200), b.Area())
	assert.False(t, b.IsEmpty())

	e := B2Empty()
	assert.True(t, e.IsEmpty())
	assert.Equal(t, float32(0), e.Area())

	e.ExpandByPoint(Vec2(2, 3))
	e.ExpandByPoint(Vec2(-1, 5))
	assert.Equal(t, B2(-1, 3, 2, 5), e)

	e.ExpandByBox(B2(0, 0, 4, 4))
	assert.Equal(t, B2(-1, 0, 4, 5), e)
}

func TestBox2Contains(t *testing.T) {
	b := B2(0, 0, 10, 10)
	assert.True(t, b.ContainsPoint(Vec2(5, 5)))
	assert.True(t, b.ContainsPoint(Vec2(0, 10)))
	assert.False(t, b.ContainsPoint(Vec2(-1, 5)))

	assert.True(t, b.ContainsBox(B2(1, 1, 9, 9)))
	assert.False(t, b.ContainsBox(B2(1, 1, 11, 9)))

	assert.True(t, b.IntersectsBox(B2(9, 9, 20, 20)))
	assert.False(t, b.IntersectsBox(B2(11, 11, 20, 20)))

	assert.Equal(t, B2(5, 5, 10, 10), b.Intersect(B2(5, 5, 20, 20)))
	assert.Equal(t, B2(0, 0, 20, 20), b.Union(B2(5, 5, 20, 20)))
}

func TestBox2Transform(t *testing.T) {
	b := B2(0, 0, 2, 2)
	tb := b.MulMatrix2(Translate2D(3, 4))
	assert.Equal(t, B2(3, 4, 5, 6), tb)

	rb := b.MulMatrix2(Rotate2D(DegToRad(90)))
	assert.InDelta(t, -2, rb.Min.X, 1.0e-5)
	assert.InDelta(t, 0, rb.Min.Y, 1.0e-5)
	assert.InDelta(t, 0, rb.Max.X, 1.0e-5)
	assert.InDelta(t, 2, rb.Max.Y, 1.0e-5)

	assert.Equal(t, image.Rect(3, 4, 5, 6), tb.ToRect())
	assert.Equal(t, B2(1, 2, 3, 4), B2(3, 4, 1, 2).Canon())
	assert.Equal(t, B2(1, 1, 3, 3), B2(0, 0, 2, 2).Translate(Vec2(1, 1)))
}
