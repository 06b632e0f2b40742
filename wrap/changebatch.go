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

// Package wrap implements the counting and logging wrappers that sit
// between a pact and the raw allocator endpoints (spec.md §4.5): a
// ChangeBatch accumulating per-timestamp deltas, and LogPusher/LogPuller/
// CountingPusher/CountingPuller layered on top of a flow.Pusher/Puller
// pair.
package wrap

import "sync"

// Delta is one non-zero entry produced by ChangeBatch.Compact.
type Delta[T any] struct {
	Key   T
	Value int64
}

// ChangeBatch accumulates signed deltas keyed by timestamp into a plain
// map under one mutex. Compact snapshots every non-zero entry and resets
// the batch, the way a striped counter nets its accumulated deltas to a
// single current value.
type ChangeBatch[T comparable] struct {
	mu     sync.Mutex
	deltas map[T]int64
}

// NewChangeBatch builds an empty batch.
func NewChangeBatch[T comparable]() *ChangeBatch[T] {
	return &ChangeBatch[T]{deltas: map[T]int64{}}
}

// Update adds delta to key's running total, dropping the entry entirely
// once it returns to zero so IsEmpty reflects only genuinely outstanding
// keys.
func (c *ChangeBatch[T]) Update(key T, delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.deltas[key] + delta
	if v == 0 {
		delete(c.deltas, key)
		return
	}
	c.deltas[key] = v
}

// IsEmpty reports whether every key's running total is currently zero.
func (c *ChangeBatch[T]) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.deltas) == 0
}

// Compact drains every outstanding delta and clears the batch, returning
// a stable snapshot safe to hand to a progress tracker.
func (c *ChangeBatch[T]) Compact() []Delta[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Delta[T], 0, len(c.deltas))
	for k, v := range c.deltas {
		out = append(out, Delta[T]{Key: k, Value: v})
	}
	c.deltas = map[T]int64{}
	return out
}
