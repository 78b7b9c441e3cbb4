// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on golang.org/x/exp/shiny:
// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package base

import "sync"

// funcQueue is a goroutine-safe list of functions waiting to be run
// on the control thread.
type funcQueue struct {
	mu    sync.Mutex
	funcs []func()
}

func (q *funcQueue) push(f func()) {
	q.mu.Lock()
	q.funcs = append(q.funcs, f)
	q.mu.Unlock()
}

// take removes and returns all queued functions.
func (q *funcQueue) take() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	fs := q.funcs
	q.funcs = nil
	return fs
}

func (q *funcQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.funcs)
}
