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

// Process is the shared-memory, multi-worker allocator variant (spec.md
// §4.3 "Process"): n workers in one address space exchange messages
// directly through a shared matrix of rawChans, with no serialization
// and no staging delay — PreWork/PostWork are no-ops.
type Process struct {
	group *processGroup
	index int

	mu        sync.Mutex
	pipelines map[uint64]*rawChan
}

// NewProcessGroup builds n Process allocators sharing one channel
// matrix, one per worker index 0..n-1.
func NewProcessGroup(n int) []*Process {
	g := newProcessGroup(n)
	out := make([]*Process, n)
	for i := 0; i < n; i++ {
		out[i] = &Process{group: g, index: i, pipelines: map[uint64]*rawChan{}}
	}
	return out
}

func (p *Process) Index() int { return p.index }
func (p *Process) Peers() int { return p.group.peers }
func (p *Process) PreWork()   {}
func (p *Process) PostWork()  {}

func (p *Process) allocateRaw(id uint64) ([]rawPush, []rawPull, *int) {
	m := p.group.matrix(id)
	peers := p.group.peers
	pushers := make([]rawPush, peers)
	sources := make([]rawPull, peers)
	for target := 0; target < peers; target++ {
		pushers[target] = m[p.index][target]
	}
	for source := 0; source < peers; source++ {
		sources[source] = m[source][p.index]
	}
	return pushers, sources, nil
}

func (p *Process) pipelineRaw(id uint64, _ []int) (rawPush, []rawPull) {
	p.mu.Lock()
	c, ok := p.pipelines[id]
	if !ok {
		c = &rawChan{}
		p.pipelines[id] = c
	}
	p.mu.Unlock()
	return c, []rawPull{c}
}
