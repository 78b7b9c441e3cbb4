// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "sync/atomic"

// Mailbox is an unbounded, ordered channel of events with a single
// producer and a single consumer. Events are received in the order
// they were sent. Sending never blocks, so a slow consumer accumulates
// a backlog instead of stalling the producer.
//
// Closing the mailbox is the only way to stop the consumer: once closed,
// [Mailbox.Receive] returns the events that were already queued and then
// reports closure. Send must be called from the producer goroutine and
// Receive from the consumer goroutine. Close may be called from either.
type Mailbox struct {
	queue  Queue
	wake   chan struct{}
	closed atomic.Bool
}

// NewMailbox returns a new open [Mailbox].
func NewMailbox() *Mailbox {
	mb := &Mailbox{wake: make(chan struct{}, 1)}
	mb.queue.Init()
	return mb
}

// Send adds the event to the end of the mailbox. It returns false,
// dropping the event, if the mailbox has been closed.
func (mb *Mailbox) Send(ev Event) bool {
	if mb.closed.Load() {
		return false
	}
	mb.queue.Send(ev)
	mb.signal()
	return true
}

// Close closes the mailbox. It is safe to call more than once.
func (mb *Mailbox) Close() {
	if mb.closed.Swap(true) {
		return
	}
	mb.signal()
}

// IsClosed returns whether [Mailbox.Close] has been called.
func (mb *Mailbox) IsClosed() bool {
	return mb.closed.Load()
}

// Receive blocks until an event is available and returns it with true.
// It returns nil, false once the mailbox is closed and empty.
func (mb *Mailbox) Receive() (Event, bool) {
	for {
		if ev := mb.queue.NextEvent(); ev != nil {
			return ev, true
		}
		if mb.closed.Load() {
			// anything sent before Close is visible now
			if ev := mb.queue.NextEvent(); ev != nil {
				return ev, true
			}
			return nil, false
		}
		<-mb.wake
	}
}

// Len returns the number of queued events.
func (mb *Mailbox) Len() int {
	return int(mb.queue.Len())
}

func (mb *Mailbox) signal() {
	select {
	case mb.wake <- struct{}{}:
	default:
	}
}
