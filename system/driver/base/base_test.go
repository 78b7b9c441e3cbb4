// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package base

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"cogentcore.org/multiwin/base/errors"
)

func TestAppNextID(t *testing.T) {
	a := NewApp("test")
	assert.Equal(t, "test", a.Name())
	assert.EqualValues(t, 1, a.NextID())
	assert.EqualValues(t, 2, a.NextID())
}

func TestAppRunQueued(t *testing.T) {
	a := NewApp("test")
	wakes := 0
	a.Wake = func() { wakes++ }
	var order []int
	a.RunOnMain(func() { order = append(order, 1) })
	a.RunOnMain(func() {
		order = append(order, 2)
		a.RunOnMain(func() { order = append(order, 3) })
	})
	assert.Equal(t, 2, a.NQueued())
	assert.Equal(t, 2, a.RunQueued())
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, a.RunQueued())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 3, wakes)
}

func TestAppExitOnce(t *testing.T) {
	a := NewApp("test")
	assert.False(t, a.IsExiting())
	assert.NoError(t, a.ExitErr())
	first := errors.New("first")
	a.Exit(first)
	a.Exit(nil)
	assert.True(t, a.IsExiting())
	assert.Equal(t, first, a.ExitErr())
}

func TestWindowRefs(t *testing.T) {
	a := NewApp("test")
	destroyed := 0
	w := NewWindow(a.NextID(), "t", image.Pt(10, 20), a.RunOnMain, func() { destroyed++ })
	assert.Equal(t, image.Pt(10, 20), w.Size())
	w.SetSize(image.Pt(30, 40))
	assert.Equal(t, image.Pt(30, 40), w.Size())

	w.AddRef()
	assert.Equal(t, 2, w.Refs())
	w.Release()
	a.RunQueued()
	assert.Equal(t, 0, destroyed)
	w.Release()
	assert.True(t, w.IsDestroyed())
	assert.Equal(t, 0, destroyed, "destroy must run on main")
	a.RunQueued()
	assert.Equal(t, 1, destroyed)

	assert.Panics(t, func() { w.Release() })
}

func TestWindowDestroyOnce(t *testing.T) {
	a := NewApp("test")
	wakes := 0
	a.Wake = func() { wakes++ }
	destroyed := 0
	w := NewWindow(a.NextID(), "t", image.Pt(1, 1), a.RunOnMain, func() { destroyed++ })
	w.AddRef()

	// torn down at exit while still referenced
	a.SetTerminated()
	assert.True(t, a.IsTerminated())
	w.Destroy()
	assert.Equal(t, 1, destroyed)
	assert.True(t, w.IsDestroyed())
	w.Destroy()
	assert.Equal(t, 1, destroyed)

	w.Release()
	w.Release()
	assert.Zero(t, a.NQueued())
	assert.Zero(t, wakes)
	assert.Zero(t, a.RunQueued())
	assert.Equal(t, 1, destroyed)
}

func TestWindowRedrawCoalesces(t *testing.T) {
	w := NewWindow(1, "t", image.Pt(1, 1), func(f func()) { f() }, nil)
	assert.True(t, w.MarkRedraw())
	assert.False(t, w.MarkRedraw())
	assert.True(t, w.TakeRedraw())
	assert.False(t, w.TakeRedraw())
	assert.True(t, w.MarkRedraw())
}
