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
)

func TestPropertyClamps(t *testing.T) {
	w := New[*WidgetBase]()
	require.NoError(t, w.Opacity.Set(3))
	assert.Equal(t, float32(1), w.Opacity.Value())
	require.NoError(t, w.Opacity.Set(-1))
	assert.Equal(t, float32(0), w.Opacity.Value())

	require.NoError(t, w.Size.Set(math32.Vec2(-5, 10)))
	assert.Equal(t, math32.Vec2(0, 10), w.Size.Value())
}

func TestTransforms(t *testing.T) {
	root := New[*Overlay]()
	mid := New[*Overlay](root)
	w := New[*WidgetBase](mid)

	require.NoError(t, mid.LayoutTransform.Set(math32.Translate2D(10, 20)))
	require.NoError(t, w.LayoutTransform.Set(math32.Translate2D(1, 2)))
	require.NoError(t, w.OffsetTransform.Set(math32.Translate2D(5, 0)))

	tolassert.Equal(t, float32(6), w.ParentTransform().X0)
	tolassert.Equal(t, float32(2), w.ParentTransform().Y0)

	win := w.WindowTransform()
	pt := win.MulVector2AsPoint(math32.Vec2(0, 0))
	tolassert.Equal(t, float32(16), pt.X)
	tolassert.Equal(t, float32(22), pt.Y)
}

func TestTransformTo(t *testing.T) {
	root := New[*Overlay]()
	a := New[*WidgetBase](root)
	b := New[*WidgetBase](root)
	require.NoError(t, a.LayoutTransform.Set(math32.Translate2D(10, 0)))
	require.NoError(t, b.LayoutTransform.Set(math32.Translate2D(0, 20)))

	m, err := a.TransformTo(b)
	require.NoError(t, err)
	pt := m.MulVector2AsPoint(math32.Vec2(0, 0))
	tolassert.Equal(t, float32(10), pt.X)
	tolassert.Equal(t, float32(-20), pt.Y)

	// self and ancestor
	m, err = a.TransformTo(a)
	require.NoError(t, err)
	tolassert.Equal(t, float32(0), m.MulVector2AsPoint(math32.Vec2(0, 0)).X)
	m, err = a.TransformTo(root)
	require.NoError(t, err)
	tolassert.Equal(t, float32(10), m.MulVector2AsPoint(math32.Vec2(0, 0)).X)

	other := New[*Overlay]()
	_, err = a.TransformTo(other)
	var de *DisjointError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, Item(a), de.From)
}

func TestEffectiveOpacity(t *testing.T) {
	root := New[*Overlay]()
	mid := New[*Overlay](root)
	w := New[*WidgetBase](mid)
	require.NoError(t, root.Opacity.Set(0.5))
	require.NoError(t, mid.Opacity.Set(0.5))
	require.NoError(t, w.Opacity.Set(0.5))
	tolassert.Equal(t, float32(0.125), w.EffectiveOpacity())
}

func TestVisibility(t *testing.T) {
	root := New[*Overlay]()
	w := New[*WidgetBase](root)
	require.NoError(t, root.Size.Set(math32.Vec2(100, 100)))

	// zero area
	assert.False(t, w.IsVisible())
	require.NoError(t, w.Size.Set(math32.Vec2(10, 10)))
	assert.True(t, w.IsVisible())

	// ancestor flag
	require.NoError(t, root.Visible.Set(false))
	assert.False(t, w.IsVisible())
	require.NoError(t, root.Visible.Set(true))

	// alpha cutoff: below half an 8-bit alpha step counts as invisible
	require.NoError(t, w.Opacity.Set(0.001))
	assert.False(t, w.IsVisible())
	require.NoError(t, w.Opacity.Set(0.002))
	assert.True(t, w.IsVisible())
	require.NoError(t, w.Opacity.Set(1))

	w.Redraw()
	assert.True(t, w.NeedsRedraw())
	require.NoError(t, w.Visible.Set(false))
	w.needsRedraw = false
	w.Redraw() // no-op while invisible
	assert.False(t, w.NeedsRedraw())
}

func TestScissor(t *testing.T) {
	root := New[*Overlay]()
	mid := New[*Overlay](root)
	w := New[*WidgetBase](mid)
	require.NoError(t, root.Size.Set(math32.Vec2(100, 100)))
	require.NoError(t, mid.Size.Set(math32.Vec2(50, 50)))
	require.NoError(t, w.Size.Set(math32.Vec2(10, 10)))

	// not an ancestor
	var nae *NotAncestorError
	require.ErrorAs(t, w.SetScissor(w), &nae)
	other := New[*Overlay]()
	require.ErrorAs(t, mid.SetScissor(other), &nae)

	require.NoError(t, w.SetScissor(mid))
	assert.Same(t, mid.AsScreenItem(), w.Scissor())

	// inherited from parent when none is set explicitly
	require.NoError(t, mid.SetScissor(root))
	require.NoError(t, w.SetScissor(nil))
	assert.Same(t, root.AsScreenItem(), w.Scissor())

	// an item outside the scissor rect is invisible
	require.NoError(t, w.SetScissor(mid))
	assert.True(t, w.IsVisible())
	require.NoError(t, w.LayoutTransform.Set(math32.Translate2D(200, 0)))
	assert.False(t, w.IsVisible())
	require.NoError(t, w.LayoutTransform.Set(math32.Identity2()))

	// moving out of the scissor's subtree silently drops it
	MoveToParent(w, other)
	assert.Nil(t, w.Scissor())
}
