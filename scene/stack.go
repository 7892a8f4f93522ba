// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"sort"

	"github.com/weft-ui/weft/base/errors"
	"github.com/weft-ui/weft/math32"
	"github.com/weft-ui/weft/styles"
)

// Stack is a layout that arranges its children one after another along
// one axis, giving each child the full extent of the cross axis.
// Extra space along the axis is distributed by priority and scale;
// when the grant is below the total minimum, low-priority children are
// shrunk first.
type Stack struct {
	LayoutBase

	// Axis is the stacking dimension.
	Axis math32.Dims

	// Gap is the spacing between consecutive children.
	Gap float32
}

func (st *Stack) Consolidate() styles.Claim {
	kids := st.visibleScreenChildren()
	if len(kids) == 0 {
		return styles.FixedClaim(0, 0)
	}
	c := kids[0].Claim.Value()
	for _, kb := range kids[1:] {
		kc := kb.Claim.Value()
		c.Add(st.Axis, kc)
	}
	if gap := st.Gap * float32(len(kids)-1); gap > 0 {
		s := c.Stretch(st.Axis)
		s.Min += gap
		s.Preferred += gap
		s.Max += gap
	}
	return c
}

func (st *Stack) Relayout(grant math32.Vector2) {
	kids := st.visibleScreenChildren()
	if len(kids) == 0 {
		return
	}
	cross := st.Axis.Other()
	avail := grant.Dim(st.Axis) - st.Gap*float32(len(kids)-1)
	if avail < 0 {
		avail = 0
	}
	stretches := make([]styles.Stretch, len(kids))
	totalMin := float32(0)
	for i, kb := range kids {
		kc := kb.Claim.Value()
		stretches[i] = *kc.Stretch(st.Axis)
		totalMin += stretches[i].Min
	}
	lengths := distribute(stretches, avail)
	deficit := avail < totalMin

	pos := float32(0)
	for i, kb := range kids {
		kc := kb.Claim.Value()
		var size math32.Vector2
		size.SetDim(st.Axis, lengths[i])
		size.SetDim(cross, kc.Stretch(cross).Clamp(grant.Dim(cross)))
		if !deficit {
			// Claim clamping would pull shrunk children back up to
			// their minimum, so it only applies when space suffices.
			size = kc.Apply(size)
		}

		var off math32.Vector2
		off.SetDim(st.Axis, pos)
		errors.Log(kb.LayoutTransform.Set(math32.Translate2D(off.X, off.Y)))
		errors.Log(kb.Size.Set(size))
		pos += size.Dim(st.Axis) + st.Gap
	}
}

// distribute computes the axis length granted to each child. Every
// child starts at its minimum; surplus is handed out toward preferred
// and then toward max, highest priority first, proportional to scale
// within a priority group. A deficit shrinks children below their
// minimum, lowest priority first.
func distribute(sts []styles.Stretch, avail float32) []float32 {
	sizes := make([]float32, len(sts))
	totalMin := float32(0)
	for i, s := range sts {
		sizes[i] = s.Min
		totalMin += s.Min
	}
	if avail < totalMin {
		shrink(sts, sizes, totalMin-avail)
		return sizes
	}
	surplus := avail - totalMin
	surplus = grow(sts, sizes, surplus, func(s styles.Stretch) float32 { return s.Preferred })
	grow(sts, sizes, surplus, func(s styles.Stretch) float32 { return s.Max })
	return sizes
}

// grow distributes surplus toward the given per-child target, highest
// priority group first, proportional to scale within a group. It
// returns the surplus left over.
func grow(sts []styles.Stretch, sizes []float32, surplus float32, target func(s styles.Stretch) float32) float32 {
	const eps = 1e-4
	for _, group := range priorityGroups(sts, false) {
		for surplus > eps {
			var totalScale float32
			for _, i := range group {
				if target(sts[i])-sizes[i] > eps {
					totalScale += sts[i].Scale
				}
			}
			if totalScale == 0 {
				break
			}
			remaining := surplus
			for _, i := range group {
				room := target(sts[i]) - sizes[i]
				if room <= eps {
					continue
				}
				share := math32.Min(remaining*sts[i].Scale/totalScale, room)
				sizes[i] += share
				surplus -= share
			}
		}
	}
	if surplus < 0 {
		surplus = 0
	}
	return surplus
}

// shrink takes the given deficit away from the children, exhausting
// each priority group (lowest first, proportional to current size)
// before touching the next.
func shrink(sts []styles.Stretch, sizes []float32, deficit float32) {
	for _, group := range priorityGroups(sts, true) {
		var groupTotal float32
		for _, i := range group {
			groupTotal += sizes[i]
		}
		if groupTotal <= 0 {
			continue
		}
		take := math32.Min(deficit, groupTotal)
		for _, i := range group {
			sizes[i] -= take * sizes[i] / groupTotal
		}
		deficit -= take
		if deficit <= 0 {
			return
		}
	}
}

// priorityGroups returns the child indexes grouped by priority, in
// ascending or descending priority order.
func priorityGroups(sts []styles.Stretch, ascending bool) [][]int {
	byPrio := map[int32][]int{}
	var prios []int32
	for i, s := range sts {
		if _, ok := byPrio[s.Priority]; !ok {
			prios = append(prios, s.Priority)
		}
		byPrio[s.Priority] = append(byPrio[s.Priority], i)
	}
	sort.Slice(prios, func(a, b int) bool {
		if ascending {
			return prios[a] < prios[b]
		}
		return prios[a] > prios[b]
	})
	groups := make([][]int, len(prios))
	for i, p := range prios {
		groups[i] = byPrio[p]
	}
	return groups
}
