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

import (
	"testing"

	"flowfabric/container"
)

type flushedBatch struct {
	target int
	at     int
	items  []int
}

func TestPartitionBuffersAcrossDrainCallsUntilCapacity(t *testing.T) {
	p := NewPartition[int, int](2)
	var flushed []flushedBatch
	record := func(target int, at int, items []int) {
		cp := append([]int(nil), items...)
		flushed = append(flushed, flushedBatch{target: target, at: at, items: cp})
	}
	index := func(x int) int { return x % 2 }

	preferred := container.PreferredCapacity[int]()
	p.Drain(0, []int{0, 1}, index, record)
	if len(flushed) != 0 {
		t.Fatalf("want no flush before capacity is reached, got %+v", flushed)
	}

	// Fill target 0's bucket up to capacity across several Drain calls.
	for i := 0; i < preferred-1; i++ {
		p.Drain(0, []int{0}, index, record)
	}
	if len(flushed) != 1 {
		t.Fatalf("want exactly 1 flush once target 0 reached capacity, got %d", len(flushed))
	}
	if flushed[0].target != 0 || len(flushed[0].items) != preferred {
		t.Fatalf("want a full %d-item batch for target 0, got %+v", preferred, flushed[0])
	}
}

func TestPartitionFlushesOnTimestampBoundary(t *testing.T) {
	p := NewPartition[int, int](1)
	var flushed []flushedBatch
	record := func(target int, at int, items []int) {
		flushed = append(flushed, flushedBatch{target: target, at: at, items: items})
	}
	index := func(x int) int { return 0 }

	p.Drain(5, []int{1, 2}, index, record)
	if len(flushed) != 0 {
		t.Fatalf("want no flush yet, got %+v", flushed)
	}
	p.Drain(6, []int{3}, index, record)
	if len(flushed) != 1 {
		t.Fatalf("want a boundary flush when the timestamp changed, got %d", len(flushed))
	}
	if flushed[0].at != 5 || len(flushed[0].items) != 2 {
		t.Fatalf("want the stale time-5 bucket flushed whole, got %+v", flushed[0])
	}
}

func TestPartitionFlushAllDrainsEveryPendingBucket(t *testing.T) {
	p := NewPartition[int, int](3)
	var flushed []flushedBatch
	record := func(target int, at int, items []int) {
		flushed = append(flushed, flushedBatch{target: target, at: at, items: items})
	}
	index := func(x int) int { return x % 3 }

	p.Drain(1, []int{0, 1, 2}, index, record)
	if len(flushed) != 0 {
		t.Fatalf("want nothing flushed before FlushAll, got %+v", flushed)
	}
	p.FlushAll(record)
	if len(flushed) != 3 {
		t.Fatalf("want all 3 targets flushed, got %d", len(flushed))
	}

	flushed = nil
	p.FlushAll(record)
	if len(flushed) != 0 {
		t.Fatalf("a second FlushAll on empty buckets should flush nothing, got %+v", flushed)
	}
}
