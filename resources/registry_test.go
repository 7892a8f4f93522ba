// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-ui/weft/base/errors"
)

type font struct {
	family string
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry[font]("font")
	reg.Register("body", &font{family: "Inter"})
	reg.Register("mono", &font{family: "JetBrains Mono"})

	f, err := reg.Get("body")
	require.NoError(t, err)
	assert.Equal(t, "Inter", f.family)

	// handles are shared
	f2 := errors.Must1(reg.Get("body"))
	assert.Same(t, f, f2)

	_, err = reg.Get("display")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "font", nf.Kind)
	assert.Equal(t, "display", nf.Name)

	assert.ElementsMatch(t, []string{"body", "mono"}, reg.Names())

	assert.True(t, reg.Remove("mono"))
	assert.False(t, reg.Remove("mono"))
	_, err = reg.Get("mono")
	assert.Error(t, err)
}
