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

// Thread is the single-worker, no-cross-worker-traffic allocator variant
// (spec.md §4.3 "Thread"). Every channel it allocates loops back to
// itself: Allocate and Pipeline behave identically here, since with one
// peer there is no fan-in to speak of.
type Thread struct {
	mu       sync.Mutex
	channels map[uint64]*rawChan
}

// NewThread builds a single-worker allocator.
func NewThread() *Thread {
	return &Thread{channels: map[uint64]*rawChan{}}
}

func (t *Thread) Index() int  { return 0 }
func (t *Thread) Peers() int  { return 1 }
func (t *Thread) PreWork()    {}
func (t *Thread) PostWork()   {}

func (t *Thread) channel(id uint64) *rawChan {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.channels[id]
	if !ok {
		c = &rawChan{}
		t.channels[id] = c
	}
	return c
}

func (t *Thread) allocateRaw(id uint64) ([]rawPush, []rawPull, *int) {
	c := t.channel(id)
	return []rawPush{c}, []rawPull{c}, nil
}

func (t *Thread) pipelineRaw(id uint64, _ []int) (rawPush, []rawPull) {
	c := t.channel(id)
	return c, []rawPull{c}
}
