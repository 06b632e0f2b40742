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

	"flowfabric/allocator"
	"flowfabric/container"
	"flowfabric/flow"
)

type recordingPusher struct {
	batches []flow.Bundle[int, container.Sequence[int]]
	flushes int
}

func (r *recordingPusher) Push(element flow.Option[flow.Bundle[int, container.Sequence[int]]], allocation *flow.Option[container.Sequence[int]]) {
	if !element.Valid {
		r.flushes++
		*allocation = flow.Option[container.Sequence[int]]{}
		return
	}
	r.batches = append(r.batches, element.Value)
	*allocation = flow.Option[container.Sequence[int]]{}
}

func TestTeeDropsSilentlyWithNoDownstreams(t *testing.T) {
	tee := New[int, int]()
	bundle := flow.NewBundle(0, container.NewSequence([]int{1, 2, 3}))
	var alloc flow.Option[container.Sequence[int]]
	tee.Push(flow.Some(bundle), &alloc)
	if alloc.Valid {
		t.Fatalf("want no allocation handed back when there are no downstreams")
	}
}

func TestTeeClonesToEveryDownstreamButTheLast(t *testing.T) {
	tee := New[int, int]()
	a := &recordingPusher{}
	b := &recordingPusher{}
	c := &recordingPusher{}
	tee.Add(a)
	tee.Add(b)
	tee.Add(c)

	bundle := flow.NewBundle(7, container.NewSequence([]int{1, 2, 3}))
	var alloc flow.Option[container.Sequence[int]]
	tee.Push(flow.Some(bundle), &alloc)

	for _, p := range []*recordingPusher{a, b, c} {
		if len(p.batches) != 1 || p.batches[0].Data.Len() != 3 {
			t.Fatalf("want every downstream to receive the 3-record batch, got %+v", p.batches)
		}
	}
	// Mutating the clone handed to the first downstream must not affect
	// the others' copies.
	a.batches[0].Data.Items()[0] = 99
	if c.batches[0].Data.Items()[0] == 99 {
		t.Fatalf("downstream batches must be independent clones")
	}
}

func TestOwnedStreamTakeSucceedsOnlyOnce(t *testing.T) {
	th := allocator.NewThread()
	_, pull := allocator.Pipeline[flow.Bundle[int, container.Sequence[int]], container.Sequence[int]](th, 1, nil)
	owned := NewOwnedStream[int, int](pull)

	got, ok := owned.Take()
	if !ok || got == nil {
		t.Fatalf("first Take should succeed")
	}
	if _, ok := owned.Take(); ok {
		t.Fatalf("second Take should fail")
	}
}

func TestBufferFlushesAtPreferredCapacity(t *testing.T) {
	rec := &recordingPusher{}
	buf := NewBuffer[int, int](rec, 0)
	preferred := container.PreferredCapacity[int]()
	for i := 0; i < preferred; i++ {
		buf.Give(i)
	}
	if len(rec.batches) != 1 {
		t.Fatalf("want exactly one flush at preferred capacity, got %d", len(rec.batches))
	}
	if rec.batches[0].Data.Len() != preferred {
		t.Fatalf("want a full batch of %d, got %d", preferred, rec.batches[0].Data.Len())
	}
}

func TestAutoflushSessionFlushesOnClose(t *testing.T) {
	rec := &recordingPusher{}
	buf := NewBuffer[int, int](rec, 0)
	func() {
		sess, done := buf.AutoflushSession()
		defer done()
		sess.Give(1)
		sess.Give(2)
	}()
	if len(rec.batches) != 1 || rec.batches[0].Data.Len() != 2 {
		t.Fatalf("want the session's 2 items flushed on Close, got %+v", rec.batches)
	}
}

func TestPushOwnedDeliversASingleFilledBatch(t *testing.T) {
	th := allocator.NewThread()
	rawPush, rawPull := allocator.Pipeline[flow.Bundle[int, container.Sequence[int]], container.Sequence[int]](th, 2, nil)
	PushOwned[int, int](rawPush, 5, []int{4, 5, 6})

	v, _ := rawPull.Pull()
	if !v.Valid || v.Value.Data.Len() != 3 || v.Value.Time != 5 {
		t.Fatalf("want a filled 3-record batch at time 5, got %+v", v)
	}
}
