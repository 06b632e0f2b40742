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

import (
	"testing"

	"flowfabric/flow"
)

func TestThreadLoopsBackToItself(t *testing.T) {
	th := NewThread()
	pushers, puller, cid := Allocate[int, string](th, 1)
	if len(pushers) != 1 {
		t.Fatalf("want 1 pusher, got %d", len(pushers))
	}
	if cid != nil {
		t.Fatalf("Thread has no transport; channel id should be nil")
	}
	var alloc flow.Option[string]
	pushers[0].Push(flow.Some(42), &alloc)
	v, back := puller.Pull()
	if !v.Valid || v.Value != 42 {
		t.Fatalf("want 42, got %+v", v)
	}
	back.Value, back.Valid = "recycled", true
	// The puller hands the written-back shell to its source on its next Pull.
	puller.Pull()
	var alloc2 flow.Option[string]
	pushers[0].Push(flow.Some(43), &alloc2)
	if !alloc2.Valid || alloc2.Value != "recycled" {
		t.Fatalf("want recycled allocation handed back, got %+v", alloc2)
	}
}

func TestProcessGroupExchangeReachesAllPeers(t *testing.T) {
	workers := NewProcessGroup(3)
	allocators := make([]Allocator, len(workers))
	for i, w := range workers {
		allocators[i] = w
	}

	// Every worker allocates the same logical channel id.
	type endpoint struct {
		push []flow.Pusher[int, struct{}]
		pull flow.Puller[int, struct{}]
	}
	endpoints := make([]endpoint, len(workers))
	for i, a := range allocators {
		push, pull, _ := Allocate[int, struct{}](a, 7)
		endpoints[i] = endpoint{push: push, pull: pull}
	}

	// Worker 0 sends to every peer, including itself.
	var noAlloc flow.Option[struct{}]
	for target := 0; target < 3; target++ {
		endpoints[0].push[target].Push(flow.Some(100+target), &noAlloc)
	}

	for target := 0; target < 3; target++ {
		v, _ := endpoints[target].pull.Pull()
		if !v.Valid || v.Value != 100+target {
			t.Fatalf("peer %d: want %d, got %+v", target, 100+target, v)
		}
	}
}

func TestBinaryStagesUntilPostWork(t *testing.T) {
	procs := NewBinaryGroup(2)
	allocators := make([]Allocator, len(procs))
	for i, p := range procs {
		allocators[i] = p
	}
	push0, _, cid := Allocate[string, struct{}](allocators[0], 3)
	_, pull1, _ := Allocate[string, struct{}](allocators[1], 3)
	if cid == nil || *cid != 3 {
		t.Fatalf("Binary should echo the channel id, got %v", cid)
	}

	var noAlloc flow.Option[struct{}]
	push0[1].Push(flow.Some("hello"), &noAlloc)

	if v, _ := pull1.Pull(); v.Valid {
		t.Fatalf("message should not be visible before PostWork, got %+v", v)
	}

	allocators[0].PostWork()

	v, _ := pull1.Pull()
	if !v.Valid || v.Value != "hello" {
		t.Fatalf("want hello after PostWork, got %+v", v)
	}
}

func TestProcessBinaryLocalTargetsSkipStaging(t *testing.T) {
	cluster := NewProcessBinaryCluster(2, 2)
	// worker (process 0, thread 0) and (process 0, thread 1) are
	// co-located; index 0 and 1 respectively.
	a0 := cluster[0][0]
	a1 := cluster[0][1]

	push0, _, _ := Allocate[int, struct{}](a0, 9)
	_, pull1, _ := Allocate[int, struct{}](a1, 9)

	var noAlloc flow.Option[struct{}]
	push0[1].Push(flow.Some(5), &noAlloc)

	// No PostWork call: same-process delivery must already be visible.
	v, _ := pull1.Pull()
	if !v.Valid || v.Value != 5 {
		t.Fatalf("same-process delivery should skip staging, got %+v", v)
	}
}

func TestProcessBinaryRemoteTargetsRequirePostWork(t *testing.T) {
	cluster := NewProcessBinaryCluster(2, 1)
	a0 := cluster[0][0]
	a1 := cluster[1][0]

	push0, _, _ := Allocate[int, struct{}](a0, 4)
	_, pull1, _ := Allocate[int, struct{}](a1, 4)

	var noAlloc flow.Option[struct{}]
	push0[1].Push(flow.Some(11), &noAlloc)

	if v, _ := pull1.Pull(); v.Valid {
		t.Fatalf("cross-process delivery must wait for PostWork, got %+v", v)
	}
	a0.PostWork()
	v, _ := pull1.Pull()
	if !v.Valid || v.Value != 11 {
		t.Fatalf("want 11 after PostWork, got %+v", v)
	}
}

func TestPipelineIsThreadLocal(t *testing.T) {
	workers := NewProcessGroup(2)
	push, pull := Pipeline[int, struct{}](workers[0], 1, nil)
	var noAlloc flow.Option[struct{}]
	push.Push(flow.Some(1), &noAlloc)
	push.Push(flow.Some(2), &noAlloc)
	v1, _ := pull.Pull()
	v2, _ := pull.Pull()
	if v1.Value != 1 || v2.Value != 2 {
		t.Fatalf("pipeline should preserve FIFO order, got %d, %d", v1.Value, v2.Value)
	}
}

func TestConfigBuildsRequestedVariant(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want int
	}{
		{"thread", Config{Variant: VariantThread}, 1},
		{"process", Config{Variant: VariantProcess, Threads: 4}, 4},
		{"binary", Config{Variant: VariantBinary, Processes: 2}, 2},
		{"process-binary", Config{Variant: VariantProcessBinary, Processes: 2, Threads: 3}, 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := New(c.cfg)
			if err != nil {
				t.Fatalf("New(%+v): %v", c.cfg, err)
			}
			if len(got) != c.want {
				t.Fatalf("want %d allocators, got %d", c.want, len(got))
			}
		})
	}
}

func TestConfigRejectsInvalidShape(t *testing.T) {
	if _, err := New(Config{Variant: VariantProcess, Threads: 0}); err == nil {
		t.Fatalf("want error for Threads=0")
	}
	if _, err := New(Config{Variant: "bogus"}); err == nil {
		t.Fatalf("want error for unknown variant")
	}
}

func TestGenericDispatchesToWrappedAllocator(t *testing.T) {
	g := NewGeneric(NewThread())
	if g.Peers() != 1 {
		t.Fatalf("want 1 peer, got %d", g.Peers())
	}
	pushers, puller, _ := Allocate[int, struct{}](g, 2)
	var noAlloc flow.Option[struct{}]
	pushers[0].Push(flow.Some(9), &noAlloc)
	v, _ := puller.Pull()
	if !v.Valid || v.Value != 9 {
		t.Fatalf("want 9 through Generic, got %+v", v)
	}
}

func TestInitializeJoinsAllWorkers(t *testing.T) {
	workers := NewProcessGroup(4)
	allocators := make([]Allocator, len(workers))
	for i, w := range workers {
		allocators[i] = w
	}
	guards := Initialize(allocators, func(a Allocator) int {
		return a.Index()
	})
	results := guards.Join()
	if len(results) != len(allocators) {
		t.Fatalf("want %d results, got %d", len(allocators), len(results))
	}
	for i, r := range results {
		if r != i {
			t.Fatalf("worker %d returned result %d, want %d", i, r, i)
		}
	}
}
