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

import "sync"

// Binary is the cross-process allocator variant (spec.md §4.3 "Binary"):
// one worker per process, exchanging messages through a transport. Real
// wire serialization (abomonation/bincode in the original) is explicitly
// out of scope; Binary instead models the round trip structurally —
// pushes stage into a buffer invisible to the receiver until PostWork
// flushes it, so the PreWork/PostWork contract has the same shape a real
// transport-backed implementation would need, without requiring one.
type Binary struct {
	group *processGroup
	index int

	mu     sync.Mutex
	stages []*stageChan
}

// NewBinaryGroup builds n Binary allocators, one per process, sharing
// one staged channel matrix.
func NewBinaryGroup(n int) []*Binary {
	g := newProcessGroup(n)
	out := make([]*Binary, n)
	for i := 0; i < n; i++ {
		out[i] = &Binary{group: g, index: i}
	}
	return out
}

func (b *Binary) Index() int { return b.index }
func (b *Binary) Peers() int { return b.group.peers }
func (b *Binary) PreWork()   {}

// PostWork flushes every channel's staged outbound frames into the
// shared matrix, making them visible to peers' pullers. A real
// implementation would hand these to a socket instead.
func (b *Binary) PostWork() {
	b.mu.Lock()
	stages := append([]*stageChan(nil), b.stages...)
	b.mu.Unlock()
	for _, s := range stages {
		s.flush()
	}
}

func (b *Binary) allocateRaw(id uint64) ([]rawPush, []rawPull, *int) {
	m := b.group.matrix(id)
	peers := b.group.peers
	pushers := make([]rawPush, peers)
	sources := make([]rawPull, peers)
	var newStages []*stageChan
	for target := 0; target < peers; target++ {
		s := &stageChan{dest: m[b.index][target]}
		pushers[target] = s
		newStages = append(newStages, s)
	}
	for source := 0; source < peers; source++ {
		sources[source] = m[source][b.index]
	}
	b.mu.Lock()
	b.stages = append(b.stages, newStages...)
	b.mu.Unlock()
	channelID := new(int)
	*channelID = int(id)
	return pushers, sources, channelID
}

// pipelineRaw: same-worker edges never leave the process, so they skip
// staging entirely and behave like Process's local pipeline channel.
func (b *Binary) pipelineRaw(id uint64, _ []int) (rawPush, []rawPull) {
	m := b.group.matrix(id)
	c := m[b.index][b.index]
	return c, []rawPull{c}
}
