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

package pact

import (
	"flowfabric/allocator"
	"flowfabric/container"
	"flowfabric/flow"
	"flowfabric/logging"
	"flowfabric/tee"
	"flowfabric/wrap"
)

// Exchange is the hash-routed fan-out contract (spec.md §4.4 "Exchange"):
// every record in an incoming batch is routed to hash(record) mod peers,
// preserving per-target order but not the original batch's order across
// targets.
type Exchange[Time comparable, T comparable] struct {
	Hash func(T) uint64
}

func (e Exchange[Time, T]) Connect(a allocator.Allocator, id uint64, addr []int, logger *logging.Logger) (
	flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]],
	flow.Puller[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]],
	*wrap.ChangeBatch[Time],
	*wrap.ChangeBatch[Time],
) {
	pushers, puller, _ := allocator.Allocate[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]](a, id)
	logConnect(logger, id, addr, nil, "Exchange")
	wrapped := make([]flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]], len(pushers))
	for i, p := range pushers {
		wrapped[i] = wrap.NewLogPusher[Time, container.Sequence[T], container.Sequence[T]](p, id, a.Index(), i, logger)
	}
	logPull := wrap.NewLogPuller[Time, container.Sequence[T], container.Sequence[T]](puller, id, a.Index(), logger)

	fanOut := &partition[Time, T]{hash: e.Hash, targets: wrapped, buf: tee.NewPartition[Time, T](len(wrapped))}

	produced := wrap.NewChangeBatch[Time]()
	consumed := wrap.NewChangeBatch[Time]()
	countPush := wrap.NewCountingPusher[Time, container.Sequence[T], container.Sequence[T]](fanOut, produced)
	countPull := wrap.NewCountingPuller[Time, container.Sequence[T], container.Sequence[T]](logPull, consumed)
	return countPush, countPull, produced, consumed
}

// partition fans a single pushed batch out across peer targets by
// per-record hash, draining every record through a buffering
// tee.Partition (spec.md §4.6) so each target only forwards a
// sub-container once it fills or a new timestamp displaces what it was
// holding, rather than an arbitrarily-sized bucket on every call.
type partition[Time comparable, T comparable] struct {
	hash    func(T) uint64
	targets []flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]]
	buf     *tee.Partition[Time, T]
}

func (p *partition[Time, T]) index(item T) int {
	return int(p.hash(item) % uint64(len(p.targets)))
}

func (p *partition[Time, T]) flushTo(target int, at Time, items []T) {
	var discard flow.Option[container.Sequence[T]]
	out := flow.NewBundle(at, container.NewSequence(items))
	p.targets[target].Push(flow.Some(out), &discard)
}

func (p *partition[Time, T]) Push(element flow.Option[flow.Bundle[Time, container.Sequence[T]]], allocation *flow.Option[container.Sequence[T]]) {
	if !element.Valid {
		p.buf.FlushAll(p.flushTo)
		var discard flow.Option[container.Sequence[T]]
		for _, t := range p.targets {
			t.Push(flow.None[flow.Bundle[Time, container.Sequence[T]]](), &discard)
		}
		*allocation = flow.Option[container.Sequence[T]]{}
		return
	}
	bundle := element.Value
	p.buf.Drain(bundle.Time, bundle.Data.Items(), p.index, p.flushTo)
	*allocation = flow.Some(bundle.Data.Hollow())
}
