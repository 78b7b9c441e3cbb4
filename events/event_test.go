// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/multiwin/events/key"
	"github.com/stretchr/testify/assert"
)

func TestEventTypes(t *testing.T) {
	tests := []struct {
		ev   Event
		want Types
	}{
		{NewClose(), WindowClose},
		{NewResize(image.Pt(800, 600)), WindowResize},
		{NewPaint(), WindowPaint},
		{NewKey(KeyDown, key.CodeN), KeyDown},
		{NewKey(KeyUp, key.CodeN), KeyUp},
		{NewClearColor(color.RGBA{1, 2, 3, 255}), ClearColorChange},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ev.Type())
		assert.False(t, tt.ev.Time().IsZero())
		assert.Contains(t, tt.ev.String(), tt.want.String())
	}
}

func TestKeyPressed(t *testing.T) {
	assert.True(t, NewKey(KeyDown, key.CodeN).Pressed())
	assert.False(t, NewKey(KeyUp, key.CodeN).Pressed())
	assert.Contains(t, NewKey(KeyDown, key.CodeN).String(), "Code: N")
}

func TestTypesString(t *testing.T) {
	assert.Equal(t, "WindowResize", WindowResize.String())
	assert.Equal(t, "Types(99)", Types(99).String())
}
