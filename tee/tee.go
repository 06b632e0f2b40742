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

// Package tee implements an operator's output side (spec.md §4.6): Tee
// fans a single logical output out to every downstream edge registered
// against it, OwnedStream enforces that an input side is consumed by
// exactly one reader, and Buffer/Session accumulate records into
// preferred-capacity batches before handing them to a Pusher.
package tee

import (
	"sync"

	"flowfabric/container"
	"flowfabric/flow"
)

// Tee fans pushed batches out to every registered downstream. A Tee with
// no downstreams silently drops what it is given rather than erroring —
// an operator wired to nothing is a valid (if useless) dataflow, and
// erroring there would make partial graph construction impossible.
type Tee[Time any, T any] struct {
	mu          sync.Mutex
	downstreams []flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]]
}

// New builds an empty Tee.
func New[Time any, T any]() *Tee[Time, T] {
	return &Tee[Time, T]{}
}

// Add registers a new downstream consumer.
func (t *Tee[Time, T]) Add(p flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]]) {
	t.mu.Lock()
	t.downstreams = append(t.downstreams, p)
	t.mu.Unlock()
}

func (t *Tee[Time, T]) Push(element flow.Option[flow.Bundle[Time, container.Sequence[T]]], allocation *flow.Option[container.Sequence[T]]) {
	t.mu.Lock()
	downstreams := append([]flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]](nil), t.downstreams...)
	t.mu.Unlock()

	if len(downstreams) == 0 {
		*allocation = flow.Option[container.Sequence[T]]{}
		return
	}

	var discard flow.Option[container.Sequence[T]]
	for i, d := range downstreams {
		last := i == len(downstreams)-1
		if !element.Valid {
			if last {
				d.Push(element, allocation)
			} else {
				d.Push(flow.None[flow.Bundle[Time, container.Sequence[T]]](), &discard)
			}
			continue
		}
		if last {
			d.Push(element, allocation)
			continue
		}
		clone := flow.Bundle[Time, container.Sequence[T]]{
			Time: element.Value.Time,
			Data: cloneSequence(element.Value.Data),
			Seq:  element.Value.Seq,
			From: element.Value.From,
		}
		d.Push(flow.Some(clone), &discard)
	}
}

func cloneSequence[T any](s container.Sequence[T]) container.Sequence[T] {
	items := s.Items()
	out := make([]T, len(items))
	copy(out, items)
	return container.NewSequence(out)
}

// OwnedStream enforces single-consumer access to a Puller: Take succeeds
// exactly once, returning false on every subsequent call, so a dataflow
// edge accidentally wired to two readers fails loudly at construction
// time rather than silently splitting records between them.
type OwnedStream[Time any, T any] struct {
	mu     sync.Mutex
	puller flow.Puller[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]]
	taken  bool
}

// NewOwnedStream wraps puller for single-consumer access.
func NewOwnedStream[Time any, T any](puller flow.Puller[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]]) *OwnedStream[Time, T] {
	return &OwnedStream[Time, T]{puller: puller}
}

// Take returns the wrapped puller and true on its first call, and
// (nil, false) on every call after that.
func (o *OwnedStream[Time, T]) Take() (flow.Puller[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]], bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.taken {
		return nil, false
	}
	o.taken = true
	return o.puller, true
}

// PushOwned pushes a single filled batch built from items at time t,
// following the flow.Send/flow.Done convention of supplying no
// allocation to recycle.
func PushOwned[Time any, T any](p flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]], t Time, items []T) {
	flow.Send[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]](p, flow.NewBundle(t, container.NewSequence(items)))
}
