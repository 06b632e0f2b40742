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

// Package input implements the unordered input operator (spec.md §4.8): a
// zero-input, one-output source driven from outside the normal scheduling
// step, whose Handle/Capability pair lets a caller assert the right to
// emit records at or after a timestamp.
package input

import (
	"sync/atomic"

	"flowfabric/wrap"
)

// Capability is a token attesting that its holder may emit records at or
// after Time(). Holding one registers a +1 claim against the operator's
// internal ChangeBatch; every capability must eventually be Dropped, or
// the operator never reports end-of-input.
type Capability[Time comparable] struct {
	time     Time
	internal *wrap.ChangeBatch[Time]
	dropped  *int32
}

func newCapability[Time comparable](t Time, internal *wrap.ChangeBatch[Time]) Capability[Time] {
	internal.Update(t, 1)
	return Capability[Time]{time: t, internal: internal, dropped: new(int32)}
}

// Time reports the timestamp this capability entitles its holder to emit
// at or after.
func (c Capability[Time]) Time() Time { return c.time }

// Clone claims a second, independent capability at the same time. Each
// clone must be dropped on its own.
func (c Capability[Time]) Clone() Capability[Time] {
	return newCapability(c.time, c.internal)
}

// Delayed drops this capability and returns a new one at t, atomically
// from the tracker's point of view: the net claim at c.Time() and t are
// each off by one for the duration of the call, never both zero at once.
func (c Capability[Time]) Delayed(t Time) Capability[Time] {
	next := newCapability(t, c.internal)
	c.Drop()
	return next
}

// Drop releases this capability's claim. Safe to call more than once;
// only the first call has an effect.
func (c Capability[Time]) Drop() {
	if atomic.CompareAndSwapInt32(c.dropped, 0, 1) {
		c.internal.Update(c.time, -1)
	}
}
