// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodesString(t *testing.T) {
	assert.Equal(t, "N", CodeN.String())
	assert.Equal(t, "A", CodeA.String())
	assert.Equal(t, "Z", CodeZ.String())
	assert.Equal(t, "0", Code0.String())
	assert.Equal(t, "9", Code9.String())
	assert.Equal(t, "F10", CodeF10.String())
	assert.Equal(t, "Escape", CodeEscape.String())
	assert.Equal(t, "Unknown", Codes(1000).String())
}

func TestCodesSetString(t *testing.T) {
	var c Codes
	assert.True(t, c.SetString("n"))
	assert.Equal(t, CodeN, c)
	assert.True(t, c.SetString(" F12 "))
	assert.Equal(t, CodeF12, c)
	assert.True(t, c.SetString("escape"))
	assert.Equal(t, CodeEscape, c)
	assert.False(t, c.SetString("hyper"))
	assert.False(t, c.SetString("unknown"))
	assert.Equal(t, CodeEscape, c)
}
