// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/weft-ui/weft/base/errors"
	"github.com/weft-ui/weft/math32"
	"github.com/weft-ui/weft/styles"
)

// Overlay is a layout that places all of its children on top of each
// other, aligned at the origin. Its implicit claim is the maximum of
// the children's claims, and every child is granted the full size.
type Overlay struct {
	LayoutBase
}

func (ov *Overlay) Consolidate() styles.Claim {
	kids := ov.visibleScreenChildren()
	if len(kids) == 0 {
		return styles.FixedClaim(0, 0)
	}
	c := kids[0].Claim.Value()
	for _, kb := range kids[1:] {
		kc := kb.Claim.Value()
		c.Maximize(kc)
	}
	return c
}

func (ov *Overlay) Relayout(grant math32.Vector2) {
	for _, kb := range ov.visibleScreenChildren() {
		kc := kb.Claim.Value()
		errors.Log(kb.LayoutTransform.Set(math32.Identity2()))
		errors.Log(kb.Size.Set(kc.Apply(grant)))
	}
}
