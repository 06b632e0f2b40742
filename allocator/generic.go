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

package allocator

import "flowfabric/flow"

// Allocator is the variant-agnostic contract every worker allocator
// implements (spec.md §4.3). Channel allocation itself lives outside the
// interface as generic package functions (Allocate, Pipeline) because Go
// forbids generic interface methods; endpoints (below) is the narrow,
// type-erased seam those functions dispatch through.
type Allocator interface {
	// Index is this worker's position among its peers.
	Index() int
	// Peers is the total worker count across the whole computation.
	Peers() int
	// PreWork runs once at the start of every scheduler step. Thread and
	// Process have nothing to do here; Binary and ProcessBinary use it as
	// the hook point a real transport would poll sockets from.
	PreWork()
	// PostWork runs once at the end of every scheduler step and is where
	// Binary/ProcessBinary flush staged outbound frames to their peers.
	PostWork()
}

// endpoints is implemented by every concrete allocator to supply the raw
// channel objects behind Allocate/Pipeline. It is unexported: callers
// only ever go through the generic functions below, never this directly.
type endpoints interface {
	allocateRaw(id uint64) (pushers []rawPush, sources []rawPull, channelID *int)
	pipelineRaw(id uint64, addr []int) (push rawPush, sources []rawPull)
}

// Allocate builds the N-to-one channel backing an Exchange (or similar
// fan-in) parallelization contract: one pusher per peer (including self)
// and a single puller that round-robins across every peer's outgoing
// queue to this worker. id must be the same value on every worker for a
// given logical edge — channel identity is assigned by the dataflow
// graph construction that calls this, not generated here, matching
// pact.rs's connect(allocator, identifier, address, logging).
func Allocate[Msg any, A any](a Allocator, id uint64) ([]flow.Pusher[Msg, A], flow.Puller[Msg, A], *int) {
	e, ok := a.(endpoints)
	if !ok {
		panic("allocator: type does not implement channel endpoints")
	}
	pushRaw, sources, channelID := e.allocateRaw(id)
	pushers := make([]flow.Pusher[Msg, A], len(pushRaw))
	for i, c := range pushRaw {
		pushers[i] = &queuePusher[Msg, A]{c: c}
	}
	return pushers, &queuePuller[Msg, A]{cs: sources}, channelID
}

// Pipeline builds the thread-local one-to-one channel used when producer
// and consumer are co-located on the same worker, bypassing the N-to-one
// machinery entirely (spec.md §4.4 Pipeline pact).
func Pipeline[Msg any, A any](a Allocator, id uint64, addr []int) (flow.Pusher[Msg, A], flow.Puller[Msg, A]) {
	e, ok := a.(endpoints)
	if !ok {
		panic("allocator: type does not implement channel endpoints")
	}
	push, sources := e.pipelineRaw(id, addr)
	return &queuePusher[Msg, A]{c: push}, &queuePuller[Msg, A]{cs: sources}
}

// queuePusher adapts a type-erased rawPush into flow.Pusher[Msg,A].
type queuePusher[Msg any, A any] struct {
	c rawPush
}

func (p *queuePusher[Msg, A]) Push(element flow.Option[Msg], allocation *flow.Option[A]) {
	var v any
	if element.Valid {
		v = element.Value
	}
	allocOut, ok := p.c.push(v, element.Valid)
	if ok {
		*allocation = flow.Some(allocOut.(A))
	} else {
		*allocation = flow.Option[A]{}
	}
}

// queuePuller adapts a set of type-erased rawPull sources into
// flow.Puller[Msg,A], round-robining across them and routing a hollowed
// allocation back to whichever source most recently yielded a message.
type queuePuller[Msg any, A any] struct {
	cs         []rawPull
	next       int
	lastSource rawPull
	scratch    flow.Option[A]
}

func (q *queuePuller[Msg, A]) Pull() (flow.Option[Msg], *flow.Option[A]) {
	if q.scratch.Valid && q.lastSource != nil {
		q.lastSource.storeBack(any(q.scratch.Value))
		q.scratch = flow.Option[A]{}
		q.lastSource = nil
	}
	n := len(q.cs)
	for i := 0; i < n; i++ {
		idx := (q.next + i) % n
		if v, ok := q.cs[idx].tryPop(); ok {
			q.next = (idx + 1) % n
			q.lastSource = q.cs[idx]
			return flow.Some(v.(Msg)), &q.scratch
		}
	}
	return flow.None[Msg](), &q.scratch
}

// Generic dispatches across the four variants behind a single value,
// mirroring communication::allocator::generic::Generic in the original —
// graph construction code that only knows it has "an allocator" doesn't
// need to match on which concrete kind.
type Generic struct {
	Allocator
}

func NewGeneric(a Allocator) Generic { return Generic{Allocator: a} }

// allocateRaw/pipelineRaw forward to the wrapped concrete allocator so a
// Generic value satisfies endpoints just like the variant it wraps;
// without this, Allocate/Pipeline's type assertion would see Generic's
// own (non-existent) methods instead of the embedded allocator's.
func (g Generic) allocateRaw(id uint64) ([]rawPush, []rawPull, *int) {
	return g.Allocator.(endpoints).allocateRaw(id)
}

func (g Generic) pipelineRaw(id uint64, addr []int) (rawPush, []rawPull) {
	return g.Allocator.(endpoints).pipelineRaw(id, addr)
}
