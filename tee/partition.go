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

import "flowfabric/container"

// Partition is the fan-out buffering primitive a hash-routed pact drains
// its incoming batches through (spec.md §4.6): one sub-container per
// target, each respecting container.PreferredCapacity[T] and persisting
// across Drain calls the way Buffer persists across Give calls, so a
// target that only receives a handful of records per batch accumulates
// them instead of forwarding a ragged near-empty container on every
// call. A sub-container never mixes records stamped at different
// times — a new timestamp for a target forces that target's pending
// bucket out first.
type Partition[Time comparable, T any] struct {
	capacity int
	buckets  [][]T
	times    []Time
	has      []bool
}

// NewPartition builds a Partition with targets buckets, each growing
// towards container.PreferredCapacity[T].
func NewPartition[Time comparable, T any](targets int) *Partition[Time, T] {
	return &Partition[Time, T]{
		capacity: container.PreferredCapacity[T](),
		buckets:  make([][]T, targets),
		times:    make([]Time, targets),
		has:      make([]bool, targets),
	}
}

// Drain appends items to their target buckets (as chosen by index),
// stamped at t, calling flush whenever a bucket reaches capacity or a
// differing timestamp displaces whatever it was already holding.
func (p *Partition[Time, T]) Drain(t Time, items []T, index func(T) int, flush func(target int, at Time, items []T)) {
	for _, item := range items {
		target := index(item)
		if p.has[target] && len(p.buckets[target]) > 0 && p.times[target] != t {
			flush(target, p.times[target], p.buckets[target])
			p.buckets[target] = nil
		}
		p.times[target] = t
		p.has[target] = true
		p.buckets[target] = append(p.buckets[target], item)
		if len(p.buckets[target]) >= p.capacity {
			flush(target, t, p.buckets[target])
			p.buckets[target] = nil
		}
	}
}

// FlushAll flushes every target's remaining buffered items, for use
// when upstream signals end of stream.
func (p *Partition[Time, T]) FlushAll(flush func(target int, at Time, items []T)) {
	for target, bucket := range p.buckets {
		if len(bucket) == 0 {
			continue
		}
		flush(target, p.times[target], bucket)
		p.buckets[target] = nil
	}
}
