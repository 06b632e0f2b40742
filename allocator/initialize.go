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

// Guards holds the goroutines Initialize spawned, one per allocator, so
// the caller can wait for them to finish and collect each one's result.
// Mirrors the stopChan/WaitGroup lifecycle core.Worker uses for its
// background commit/eviction loops.
type Guards[R any] struct {
	wg      *sync.WaitGroup
	results []R
}

// Join blocks until every spawned worker goroutine has returned, then
// returns their results in allocator-index order.
func (g *Guards[R]) Join() []R {
	g.wg.Wait()
	return g.results
}

// Initialize spawns one goroutine per allocator in allocators, each
// running fn(a) and recording its return value. It returns immediately
// with a Guards the caller can Join on for the per-worker results. fn is
// responsible for calling a.PreWork()/a.PostWork() around its own
// scheduler steps and for returning when its work is done — Initialize
// itself has no notion of when a computation is complete.
func Initialize[R any](allocators []Allocator, fn func(Allocator) R) *Guards[R] {
	var wg sync.WaitGroup
	wg.Add(len(allocators))
	results := make([]R, len(allocators))
	for i, a := range allocators {
		i, a := i, a
		go func() {
			defer wg.Done()
			results[i] = fn(a)
		}()
	}
	return &Guards[R]{wg: &wg, results: results}
}
