// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-ui/weft/base/tolassert"
	"github.com/weft-ui/weft/math32"
	"github.com/weft-ui/weft/styles"
)

func vclaim(min, pref, max float32) styles.Claim {
	c := styles.NewClaim()
	c.Stretch(math32.Y).SetMin(min).SetPreferred(pref)
	c.Stretch(math32.Y).SetMax(max)
	return c
}

func TestStackConsolidate(t *testing.T) {
	st := New[*Stack]()
	st.Axis = math32.Y
	w1 := New[*WidgetBase](st)
	w2 := New[*WidgetBase](st)

	c1 := vclaim(10, 20, 30)
	c1.Stretch(math32.X).SetFixed(5)
	require.NoError(t, w1.Claim.Set(c1))
	c2 := vclaim(20, 30, 40)
	c2.Stretch(math32.X).SetFixed(8)
	require.NoError(t, w2.Claim.Set(c2))

	c := st.Consolidate()
	v := c.Stretch(math32.Y)
	assert.Equal(t, float32(30), v.Min)
	assert.Equal(t, float32(50), v.Preferred)
	assert.Equal(t, float32(70), v.Max)
	h := c.Stretch(math32.X)
	assert.Equal(t, float32(8), h.Min)
	assert.Equal(t, float32(8), h.Max)

	// the gap between children claims space too
	st.Gap = 10
	c = st.Consolidate()
	v = c.Stretch(math32.Y)
	assert.Equal(t, float32(40), v.Min)
	assert.Equal(t, float32(60), v.Preferred)
	assert.Equal(t, float32(80), v.Max)
}

func TestStackGrow(t *testing.T) {
	st := New[*Stack]()
	st.Axis = math32.Y
	ws := make([]*WidgetBase, 3)
	scales := []float32{1, 2, 1}
	for i := range ws {
		ws[i] = New[*WidgetBase](st)
		c := vclaim(100, 150, math32.Infinity)
		c.Stretch(math32.Y).SetScale(scales[i])
		require.NoError(t, ws[i].Claim.Set(c))
	}
	require.NoError(t, st.Size.Set(math32.Vec2(50, 600)))
	LayoutPass(st)

	// 300 of surplus: 150 toward preferred (50 each), the remaining
	// 150 toward max, weighted by scale
	tolassert.Equal(t, float32(187.5), ws[0].Size.Value().Y)
	tolassert.Equal(t, float32(225), ws[1].Size.Value().Y)
	tolassert.Equal(t, float32(187.5), ws[2].Size.Value().Y)

	tolassert.Equal(t, float32(0), ws[0].LayoutTransform.Value().Y0)
	tolassert.Equal(t, float32(187.5), ws[1].LayoutTransform.Value().Y0)
	tolassert.Equal(t, float32(412.5), ws[2].LayoutTransform.Value().Y0)

	// cross axis: full extent, unconstrained claims
	tolassert.Equal(t, float32(50), ws[0].Size.Value().X)
}

func TestStackGrowPriority(t *testing.T) {
	st := New[*Stack]()
	st.Axis = math32.Y
	w1 := New[*WidgetBase](st)
	w2 := New[*WidgetBase](st)
	c1 := vclaim(0, 100, 100)
	c1.Stretch(math32.Y).SetPriority(1)
	require.NoError(t, w1.Claim.Set(c1))
	require.NoError(t, w2.Claim.Set(vclaim(0, 100, 100)))

	require.NoError(t, st.Size.Set(math32.Vec2(10, 150)))
	LayoutPass(st)

	// the higher priority reaches its preferred size first
	tolassert.Equal(t, float32(100), w1.Size.Value().Y)
	tolassert.Equal(t, float32(50), w2.Size.Value().Y)
}

func TestStackShrink(t *testing.T) {
	st := New[*Stack]()
	st.Axis = math32.Y
	ws := make([]*WidgetBase, 3)
	prios := []int32{1, 0, 0}
	for i := range ws {
		ws[i] = New[*WidgetBase](st)
		c := vclaim(100, 100, 200)
		c.Stretch(math32.Y).SetPriority(prios[i])
		require.NoError(t, ws[i].Claim.Set(c))
	}

	// grant below the total minimum of 300: the low-priority children
	// are shrunk below their minimum, the high-priority one is not
	require.NoError(t, st.Size.Set(math32.Vec2(50, 200)))
	LayoutPass(st)

	tolassert.Equal(t, float32(100), ws[0].Size.Value().Y)
	tolassert.Equal(t, float32(50), ws[1].Size.Value().Y)
	tolassert.Equal(t, float32(50), ws[2].Size.Value().Y)
	tolassert.Equal(t, float32(100), ws[1].LayoutTransform.Value().Y0)
	tolassert.Equal(t, float32(150), ws[2].LayoutTransform.Value().Y0)
}

func TestOverlay(t *testing.T) {
	ov := New[*Overlay]()
	w1 := New[*WidgetBase](ov)
	w2 := New[*WidgetBase](ov)
	require.NoError(t, w1.Claim.Set(styles.FixedClaim(30, 40)))
	require.NoError(t, w2.Claim.Set(styles.FixedClaim(60, 20)))

	c := ov.Consolidate()
	assert.Equal(t, float32(60), c.Stretch(math32.X).Min)
	assert.Equal(t, float32(40), c.Stretch(math32.Y).Min)

	require.NoError(t, ov.Size.Set(math32.Vec2(100, 100)))
	LayoutPass(ov)
	assert.Equal(t, math32.Vec2(30, 40), w1.Size.Value())
	assert.Equal(t, math32.Vec2(60, 20), w2.Size.Value())
	tolassert.Equal(t, float32(0), w1.LayoutTransform.Value().X0)
}

func TestNegotiate(t *testing.T) {
	st := New[*Stack]()
	st.Axis = math32.Y
	w1 := New[*WidgetBase](st)
	w2 := New[*WidgetBase](st)
	require.NoError(t, w1.Claim.Set(vclaim(50, 50, 50)))
	require.NoError(t, w2.Claim.Set(vclaim(50, 50, 50)))
	require.NoError(t, st.Size.Set(math32.Vec2(10, 200)))
	LayoutPass(st)
	tolassert.Equal(t, float32(50), w2.LayoutTransform.Value().Y0)
	sc := st.Claim.Value()
	assert.Equal(t, float32(100), sc.Stretch(math32.Y).Min)

	// changing a child claim marks the parent, and Negotiate reflows
	require.NoError(t, w1.Claim.Set(vclaim(80, 80, 80)))
	st.Negotiate()
	sc = st.Claim.Value()
	assert.Equal(t, float32(130), sc.Stretch(math32.Y).Min)
	tolassert.Equal(t, float32(80), w1.Size.Value().Y)
	tolassert.Equal(t, float32(80), w2.LayoutTransform.Value().Y0)
}

func TestExplicitClaim(t *testing.T) {
	st := New[*Stack]()
	st.Axis = math32.Y
	w := New[*WidgetBase](st)
	require.NoError(t, w.Claim.Set(vclaim(50, 50, 50)))

	st.SetExplicitClaim(styles.FixedClaim(10, 10))
	st.refreshClaim()
	sc := st.Claim.Value()
	assert.Equal(t, float32(10), sc.Stretch(math32.Y).Min)

	st.ClearExplicitClaim()
	st.refreshClaim()
	sc = st.Claim.Value()
	assert.Equal(t, float32(50), sc.Stretch(math32.Y).Min)
}

func TestContentBox(t *testing.T) {
	st := New[*Stack]()
	st.Axis = math32.Y
	w1 := New[*WidgetBase](st)
	w2 := New[*WidgetBase](st)
	require.NoError(t, w1.Claim.Set(styles.FixedClaim(10, 50)))
	require.NoError(t, w2.Claim.Set(styles.FixedClaim(20, 50)))
	require.NoError(t, st.Size.Set(math32.Vec2(20, 100)))
	LayoutPass(st)

	assert.Equal(t, math32.B2(0, 0, 20, 100), st.ContentBox)
}
