// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/fixed"
)

func TestVector2(t *testing.T) {
	assert.Equal(t, Vector2{5, 10}, Vec2(5, 10))
	assert.Equal(t, Vector2{20, 20}, Vector2Scalar(20))
	assert.Equal(t, Vector2{15, -5}, Vector2FromPoint(image.Pt(15, -5)))
	assert.Equal(t, Vector2{8, 3}, Vector2FromFixed(fixed.P(8, 3)))

	v := Vector2{}
	v.Set(-1, 7)
	assert.Equal(t, Vector2{-1, 7}, v)

	v.SetScalar(8.12)
	assert.Equal(t, Vector2{8.12, 8.12}, v)

	v.SetZero()
	assert.Equal(t, Vector2{}, v)
}

func TestVector2Ops(t *testing.T) {
	a := Vec2(3, 4)
	b := Vec2(1, -2)

	assert.Equal(t, Vec2(4, 2), a.Add(b))
	assert.Equal(t, Vec2(2, 6), a.Sub(b))
	assert.Equal(t, Vec2(3, -8), a.Mul(b))
	assert.Equal(t, Vec2(6, 8), a.MulScalar(2))
	assert.Equal(t, Vec2(1.5, 2), a.DivScalar(2))
	assert.Equal(t, Vector2{}, a.DivScalar(0))

	assert.Equal(t, Vec2(1, -2), a.Min(b))
	assert.Equal(t, Vec2(3, 4), a.Max(b))

	assert.Equal(t, float32(-5), a.Dot(b))
	assert.Equal(t, float32(5), a.Length())
	assert.Equal(t, float32(25), a.LengthSquared())
	assert.Equal(t, float32(1), a.Normal().Length())
	assert.Equal(t, float32(12), a.Area())

	c := Vec2(5, -3)
	c.Clamp(Vec2(0, 0), Vec2(4, 4))
	assert.Equal(t, Vec2(4, 0), c)

	assert.Equal(t, float32(4), a.Dim(X)+b.Dim(X))
	d := Vec2(0, 0)
	d.SetDim(Y, 9)
	assert.Equal(t, Vec2(0, 9), d)
}

func TestVector2Points(t *testing.T) {
	v := Vec2(1.4, 2.6)
	assert.Equal(t, image.Pt(1, 2), v.ToPoint())
	assert.Equal(t, image.Pt(1, 2), v.ToPointFloor())
	assert.Equal(t, image.Pt(2, 3), v.ToPointCeil())
	assert.Equal(t, image.Pt(1, 3), v.ToPointRound())
}
