// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailboxOrder(t *testing.T) {
	mb := NewMailbox()
	const n = 1000
	got := make(chan int, n)
	go func() {
		for {
			ev, ok := mb.Receive()
			if !ok {
				close(got)
				return
			}
			got <- ev.(*Resize).Size.X
		}
	}()
	for i := range n {
		require.True(t, mb.Send(NewResize(image.Pt(i, 1))))
	}
	mb.Close()

	i := 0
	for x := range got {
		assert.Equal(t, i, x)
		i++
	}
	assert.Equal(t, n, i)
}

func TestMailboxCloseDrains(t *testing.T) {
	mb := NewMailbox()
	mb.Send(NewPaint())
	mb.Send(NewClose())
	mb.Close()
	assert.True(t, mb.IsClosed())
	assert.False(t, mb.Send(NewPaint()))
	assert.Equal(t, 2, mb.Len())

	ev, ok := mb.Receive()
	require.True(t, ok)
	assert.Equal(t, WindowPaint, ev.Type())
	ev, ok = mb.Receive()
	require.True(t, ok)
	assert.Equal(t, WindowClose, ev.Type())
	ev, ok = mb.Receive()
	assert.False(t, ok)
	assert.Nil(t, ev)
}

func TestMailboxCloseWakesReceiver(t *testing.T) {
	mb := NewMailbox()
	done := make(chan struct{})
	go func() {
		_, ok := mb.Receive()
		assert.False(t, ok)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	mb.Close()
	mb.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("receiver was not woken by Close")
	}
}

func TestMailboxSendNeverBlocks(t *testing.T) {
	mb := NewMailbox()
	for range 10000 {
		mb.Send(NewPaint())
	}
	assert.Equal(t, 10000, mb.Len())
}

func TestMailboxLenNeverNegative(t *testing.T) {
	mb := NewMailbox()
	const n = 10000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, ok := mb.Receive(); !ok {
				return
			}
			l := mb.Len()
			if l < 0 || l > n {
				t.Errorf("Len = %d while receiving", l)
				return
			}
		}
	}()
	for i := range n {
		mb.Send(NewResize(image.Pt(i, 1)))
	}
	mb.Close()
	<-done
	assert.Zero(t, mb.Len())
}
