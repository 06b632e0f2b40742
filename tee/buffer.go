// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tee

import (
	"sync"

	"flowfabric/container"
	"flowfabric/flow"
)

// Buffer accumulates records given one at a time and flushes them to a
// Pusher as a single batch once their count reaches the element type's
// preferred capacity (container.PreferredCapacity), the same
// count-threshold flush timely_container::builder uses — there is no
// time-based flush here because a Buffer has no notion of "idle"; an
// operator that needs one drives Flush from its own scheduling.
type Buffer[Time any, T any] struct {
	mu       sync.Mutex
	time     Time
	items    []T
	capacity int
	pusher   flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]]
}

// NewBuffer builds a Buffer that flushes filled batches stamped at t to
// pusher.
func NewBuffer[Time any, T any](pusher flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]], t Time) *Buffer[Time, T] {
	return &Buffer[Time, T]{
		pusher:   pusher,
		time:     t,
		capacity: container.PreferredCapacity[T](),
	}
}

// Give appends item, flushing the buffer once it reaches capacity.
func (b *Buffer[Time, T]) Give(item T) {
	b.mu.Lock()
	b.items = append(b.items, item)
	full := len(b.items) >= b.capacity
	b.mu.Unlock()
	if full {
		b.Flush()
	}
}

// Flush pushes any buffered items as a single batch. A no-op on an empty
// buffer.
func (b *Buffer[Time, T]) Flush() {
	b.mu.Lock()
	if len(b.items) == 0 {
		b.mu.Unlock()
		return
	}
	items := b.items
	b.items = nil
	b.mu.Unlock()

	bundle := flow.NewBundle(b.time, container.NewSequence(items))
	flow.Send[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]](b.pusher, bundle)
}

// Session is a scoped handle onto a Buffer. It exists so call sites read
// like an explicit begin/end block even though Go has no destructor to
// flush on scope exit automatically.
type Session[Time any, T any] struct {
	buffer *Buffer[Time, T]
}

// Session opens a new Session over b.
func (b *Buffer[Time, T]) Session() Session[Time, T] {
	return Session[Time, T]{buffer: b}
}

// Give appends item through the session's buffer.
func (s Session[Time, T]) Give(item T) {
	s.buffer.Give(item)
}

// Close flushes the session's buffer. Sessions do not nest or reference
// count: closing one flushes whatever the buffer currently holds.
func (s Session[Time, T]) Close() {
	s.buffer.Flush()
}

// AutoflushSession opens a Session and returns its Close method alongside
// it, for the standard `sess, done := buf.AutoflushSession(); defer
// done()` idiom — the closest Go equivalent to timely's activate-on-drop
// session guard.
func (b *Buffer[Time, T]) AutoflushSession() (Session[Time, T], func()) {
	s := b.Session()
	return s, s.Close
}
