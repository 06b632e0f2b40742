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

package registry

import (
	"testing"

	"flowfabric/metrics"
)

type countingLogger struct{ flushes int }

func (c *countingLogger) Flush() { c.flushes++ }

func TestInsertGetRemove(t *testing.T) {
	r := New()
	if r.Get("timely/communication") != nil {
		t.Fatalf("empty registry should return nil")
	}
	l := &countingLogger{}
	r.Insert("timely/communication", l)
	if r.Get("timely/communication") != l {
		t.Fatalf("expected to retrieve the inserted logger")
	}
	removed := r.Remove("timely/communication")
	if removed != l {
		t.Fatalf("Remove should return the removed logger")
	}
	if r.Get("timely/communication") != nil {
		t.Fatalf("logger should be gone after Remove")
	}
}

func TestFlushAllFlushesEveryEntry(t *testing.T) {
	r := New()
	a, b := &countingLogger{}, &countingLogger{}
	r.Insert("a", a)
	r.Insert("b", b)
	r.FlushAll()
	if a.flushes != 1 || b.flushes != 1 {
		t.Fatalf("want both loggers flushed once, got a=%d b=%d", a.flushes, b.flushes)
	}
}

func TestWithRecorderTracksEntryCountAcrossInsertAndRemove(t *testing.T) {
	r := New().WithRecorder(metrics.NewRecorder())
	l := &countingLogger{}
	r.Insert("solo", l)
	r.Insert("solo", l) // replacing an existing name must not double-count
	if r.count.Load() != 1 {
		t.Fatalf("count = %d, want 1 after inserting the same name twice", r.count.Load())
	}
	r.Remove("solo")
	if r.count.Load() != 0 {
		t.Fatalf("count = %d, want 0 after removing the only entry", r.count.Load())
	}
}
