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
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-rendezvous"

	"flowfabric/allocator"
	"flowfabric/container"
	"flowfabric/flow"
	"flowfabric/logging"
	"flowfabric/tee"
	"flowfabric/wrap"
)

// RendezvousExchange is an additive alternative to Exchange: instead of a
// plain modulo hash, it routes records via highest-random-weight (HRW)
// hashing, which only reshuffles the minimal set of keys when the peer
// count changes — useful for a computation whose worker count isn't
// fixed for its whole lifetime. The default Exchange pact remains the
// exact hash(x) mod peers routing spec.md's test scenarios assume.
type RendezvousExchange[Time comparable, T comparable] struct {
	Hash func(T) uint64
}

func (e RendezvousExchange[Time, T]) Connect(a allocator.Allocator, id uint64, addr []int, logger *logging.Logger) (
	flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]],
	flow.Puller[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]],
	*wrap.ChangeBatch[Time],
	*wrap.ChangeBatch[Time],
) {
	peers := a.Peers()
	nodes := make([]string, peers)
	for i := range nodes {
		nodes[i] = strconv.Itoa(i)
	}
	ring := rendezvous.New(nodes, func(s string) uint64 {
		return xxhash.Sum64String(s)
	})

	pushers, puller, _ := allocator.Allocate[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]](a, id)
	logConnect(logger, id, addr, nil, "RendezvousExchange")
	wrapped := make([]flow.Pusher[flow.Bundle[Time, container.Sequence[T]], container.Sequence[T]], len(pushers))
	for i, p := range pushers {
		wrapped[i] = wrap.NewLogPusher[Time, container.Sequence[T], container.Sequence[T]](p, id, a.Index(), i, logger)
	}
	logPull := wrap.NewLogPuller[Time, container.Sequence[T], container.Sequence[T]](puller, id, a.Index(), logger)

	lookup := func(item T) uint64 {
		key := strconv.FormatUint(e.Hash(item), 10)
		node := ring.Lookup(key)
		idx, _ := strconv.Atoi(node)
		return uint64(idx)
	}
	fanOut := &partition[Time, T]{hash: lookup, targets: wrapped, buf: tee.NewPartition[Time, T](len(wrapped))}

	produced := wrap.NewChangeBatch[Time]()
	consumed := wrap.NewChangeBatch[Time]()
	countPush := wrap.NewCountingPusher[Time, container.Sequence[T], container.Sequence[T]](fanOut, produced)
	countPull := wrap.NewCountingPuller[Time, container.Sequence[T], container.Sequence[T]](logPull, consumed)
	return countPush, countPull, produced, consumed
}
