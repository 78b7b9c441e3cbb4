// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on golang.org/x/exp/shiny:
// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package base

import (
	"maps"
	"slices"
	"sync"

	"cogentcore.org/multiwin/system"
)

// AppMulti contains the data and logic common to multi-window drivers.
// An AppMulti is associated with a corresponding type of [system.Window]
// which should embed [Window]. It tracks the native windows that exist,
// which is independent of the windows the coordinator still routes to:
// a window stays here until its last reference is released.
type AppMulti[W system.Window] struct {
	App

	// Mu protects Windows; windows are added on the control thread
	// but looked up from event callbacks.
	Mu sync.Mutex

	// Windows are the native windows that have not been destroyed.
	Windows map[system.WindowID]W
}

// NewAppMulti makes a new [AppMulti].
func NewAppMulti[W system.Window](name string) AppMulti[W] {
	return AppMulti[W]{
		App:     NewApp(name),
		Windows: make(map[system.WindowID]W),
	}
}

// AddWindow records a newly created window.
func (a *AppMulti[W]) AddWindow(w W) {
	a.Mu.Lock()
	defer a.Mu.Unlock()
	a.Windows[w.ID()] = w
}

// RemoveWindow forgets the given window. It does not destroy it.
func (a *AppMulti[W]) RemoveWindow(id system.WindowID) {
	a.Mu.Lock()
	defer a.Mu.Unlock()
	delete(a.Windows, id)
}

// WindowByID returns the live native window with the given id.
func (a *AppMulti[W]) WindowByID(id system.WindowID) (W, bool) {
	a.Mu.Lock()
	defer a.Mu.Unlock()
	w, ok := a.Windows[id]
	return w, ok
}

// NWindows returns the number of native windows that exist.
func (a *AppMulti[W]) NWindows() int {
	a.Mu.Lock()
	defer a.Mu.Unlock()
	return len(a.Windows)
}

// WindowIDs returns the ids of the native windows, in increasing order.
func (a *AppMulti[W]) WindowIDs() []system.WindowID {
	a.Mu.Lock()
	defer a.Mu.Unlock()
	return slices.Sorted(maps.Keys(a.Windows))
}
