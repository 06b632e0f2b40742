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

// Package pact implements the parallelization contracts (spec.md §4.4):
// Pipeline (thread-local, one-to-one) and Exchange (hash-routed fan-out),
// plus an additive rendezvous-hashed variant. Each Pact's Connect wires
// an allocator channel through the counting/logging wrappers in wrap and
// returns the resulting Pusher/Puller pair alongside the produced and
// consumed ChangeBatch handles a progress tracker observes independently.
package pact

import (
	"flowfabric/allocator"
	"flowfabric/container"
	"flowfabric/flow"
	"flowfabric/logging"
	"flowfabric/wrap"
)

// Pact is the parallelization contract interface: given an allocator and
// a channel identity, produce the Pusher/Puller pair an operator's edge
// will use, plus the pair's produced/consumed counters. Time is the
// dataflow timestamp type (comparable so it can key a wrap.ChangeBatch),
// T the record type held in a container.Sequence[T], A that container's
// allocation type (itself, per container.Sequence.Hollow).
type Pact[Time comparable, T comparable, A any] interface {
	Connect(a allocator.Allocator, id uint64, addr []int, logger *logging.Logger) (
		flow.Pusher[flow.Bundle[Time, container.Sequence[T]], A],
		flow.Puller[flow.Bundle[Time, container.Sequence[T]], A],
		*wrap.ChangeBatch[Time],
		*wrap.ChangeBatch[Time],
	)
}

func logConnect(logger *logging.Logger, id uint64, addr, target []int, kind string) {
	if logger == nil {
		return
	}
	logger.Log(logging.ChannelsEvent{ChannelID: id, Address: addr, Target: target, Kind: kind})
}

// Pipeline is the thread-local, one-to-one contract (spec.md §4.4
// "Pipeline"): no cross-worker traffic, no hashing, lowest overhead.
type Pipeline[Time comparable, T comparable] struct{}

func (Pipeline[Time, T]) Connect(a allocator.Allocator, id uint64, addr []int, logger *logging.Logger) (
	flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]],
	flow.Puller[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]],
	*wrap.ChangeBatch[Time],
	*wrap.ChangeBatch[Time],
) {
	push, pull := allocator.Pipeline[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]](a, id, addr)
	logConnect(logger, id, addr, addr, "Pipeline")
	logPush := wrap.NewLogPusher[Time, container.Sequence[T], container.Sequence[T]](push, id, a.Index(), a.Index(), logger)
	logPull := wrap.NewLogPuller[Time, container.Sequence[T], container.Sequence[T]](pull, id, a.Index(), logger)

	produced := wrap.NewChangeBatch[Time]()
	consumed := wrap.NewChangeBatch[Time]()
	countPush := wrap.NewCountingPusher[Time, container.Sequence[T], container.Sequence[T]](logPush, produced)
	countPull := wrap.NewCountingPuller[Time, container.Sequence[T], container.Sequence[T]](logPull, consumed)
	return countPush, countPull, produced, consumed
}
