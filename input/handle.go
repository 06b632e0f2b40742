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

package input

import (
	"flowfabric/container"
	"flowfabric/tee"
	"flowfabric/wrap"
)

// Handle is a session producer bound to an unordered input's downstream
// Tee: Session opens an auto-flushing tee.Session at a capability's time.
type Handle[Time comparable, T any] struct {
	pusher *wrap.CountingPusher[Time, container.Sequence[T], container.Sequence[T]]
}

func newHandle[Time comparable, T any](pusher *wrap.CountingPusher[Time, container.Sequence[T], container.Sequence[T]]) *Handle[Time, T] {
	return &Handle[Time, T]{pusher: pusher}
}

// Session opens an auto-flushing session bound to cap's timestamp. The
// returned closer must be called (typically via defer) once the caller
// is done giving records for this session; calling it flushes any
// partial batch still buffered.
func (h *Handle[Time, T]) Session(cap Capability[Time]) (tee.Session[Time, T], func()) {
	buf := tee.NewBuffer[Time, T](h.pusher, cap.Time())
	return buf.AutoflushSession()
}

// New builds a fresh unordered input: a Handle/Capability pair the caller
// drives from outside the scheduler, the downstream Tee new dataflow
// edges attach to, and the Operator the scheduler drives to publish
// progress. peers is the total worker count across the computation (used
// to multiply capability claims into cluster-wide terms).
func New[Time comparable, T any](peers int) (*Handle[Time, T], Capability[Time], *tee.Tee[Time, T], *Operator[Time]) {
	output := tee.New[Time, T]()
	produced := wrap.NewChangeBatch[Time]()
	counted := wrap.NewCountingPusher[Time, container.Sequence[T], container.Sequence[T]](output, produced)

	internal := wrap.NewChangeBatch[Time]()
	var zero Time
	cap := newCapability(zero, internal)

	op := &Operator[Time]{
		internal: internal,
		produced: produced,
		peers:    peers,
		shared:   NewSharedProgress[Time](),
	}

	return newHandle[Time, T](counted), cap, output, op
}
