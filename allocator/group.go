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

// processGroup is the shared channel matrix spanning every worker in one
// Process(n) group (or, for ProcessBinary, every worker cluster-wide):
// matrix(id)[source][target] is the rawChan carrying traffic from source
// to target for logical edge id. It is built lazily and shared by every
// worker in the group since they all live in one address space.
type processGroup struct {
	peers int

	mu       sync.Mutex
	matrices map[uint64][][]*rawChan
}

func newProcessGroup(peers int) *processGroup {
	return &processGroup{peers: peers, matrices: map[uint64][][]*rawChan{}}
}

func (g *processGroup) matrix(id uint64) [][]*rawChan {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.matrices[id]
	if ok {
		return m
	}
	m = make([][]*rawChan, g.peers)
	for s := range m {
		m[s] = make([]*rawChan, g.peers)
		for t := range m[s] {
			m[s][t] = &rawChan{}
		}
	}
	g.matrices[id] = m
	return m
}
