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

// processBinaryGroup spans every worker in the whole cluster: workers
// sharing a process talk through the matrix directly (like Process);
// workers in different processes talk through a staged hop (like
// Binary). One shared matrix serves both paths, sized processes *
// threadsPerProcess, so the same rawChan cell is the ground truth for
// both an instant same-process write and a staged cross-process flush.
type processBinaryGroup struct {
	processes         int
	threadsPerProcess int
	group             *processGroup
}

func newProcessBinaryGroup(processes, threadsPerProcess int) *processBinaryGroup {
	return &processBinaryGroup{
		processes:         processes,
		threadsPerProcess: threadsPerProcess,
		group:             newProcessGroup(processes * threadsPerProcess),
	}
}

// ProcessBinary is the hybrid allocator variant (spec.md §4.3
// "ProcessBinary"): a process-local fast path among co-located threads,
// plus a Binary-style staged path to threads in other processes.
type ProcessBinary struct {
	cluster      *processBinaryGroup
	processIndex int
	threadIndex  int
	index        int

	mu        sync.Mutex
	stages    []*stageChan
	pipelines map[uint64]*rawChan
}

// NewProcessBinaryCluster builds processes*threadsPerProcess allocators,
// grouped by process, sharing one channel matrix.
func NewProcessBinaryCluster(processes, threadsPerProcess int) [][]*ProcessBinary {
	cluster := newProcessBinaryGroup(processes, threadsPerProcess)
	out := make([][]*ProcessBinary, processes)
	for p := 0; p < processes; p++ {
		out[p] = make([]*ProcessBinary, threadsPerProcess)
		for t := 0; t < threadsPerProcess; t++ {
			out[p][t] = &ProcessBinary{
				cluster:      cluster,
				processIndex: p,
				threadIndex:  t,
				index:        p*threadsPerProcess + t,
				pipelines:    map[uint64]*rawChan{},
			}
		}
	}
	return out
}

func (pb *ProcessBinary) Index() int { return pb.index }
func (pb *ProcessBinary) Peers() int { return pb.cluster.processes * pb.cluster.threadsPerProcess }
func (pb *ProcessBinary) PreWork()   {}

func (pb *ProcessBinary) PostWork() {
	pb.mu.Lock()
	stages := append([]*stageChan(nil), pb.stages...)
	pb.mu.Unlock()
	for _, s := range stages {
		s.flush()
	}
}

func (pb *ProcessBinary) sameProcess(target int) bool {
	return target/pb.cluster.threadsPerProcess == pb.processIndex
}

func (pb *ProcessBinary) allocateRaw(id uint64) ([]rawPush, []rawPull, *int) {
	m := pb.cluster.group.matrix(id)
	peers := pb.Peers()
	pushers := make([]rawPush, peers)
	sources := make([]rawPull, peers)
	var newStages []*stageChan
	for target := 0; target < peers; target++ {
		cell := m[pb.index][target]
		if pb.sameProcess(target) {
			pushers[target] = cell
		} else {
			s := &stageChan{dest: cell}
			pushers[target] = s
			newStages = append(newStages, s)
		}
	}
	for source := 0; source < peers; source++ {
		sources[source] = m[source][pb.index]
	}
	pb.mu.Lock()
	pb.stages = append(pb.stages, newStages...)
	pb.mu.Unlock()
	channelID := new(int)
	*channelID = int(id)
	return pushers, sources, channelID
}

func (pb *ProcessBinary) pipelineRaw(id uint64, _ []int) (rawPush, []rawPull) {
	pb.mu.Lock()
	c, ok := pb.pipelines[id]
	if !ok {
		c = &rawChan{}
		pb.pipelines[id] = c
	}
	pb.mu.Unlock()
	return c, []rawPull{c}
}
