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

package logging

import (
	"math"
	"reflect"
	"sync"
	"time"

	"flowfabric/container"
	"flowfabric/metrics"
)

// maxOffset is the largest nanosecond offset a uint32 can carry. Once an
// event's time since the logger's base would exceed it, the buffer must
// be flushed and rebased before the event can be recorded (spec.md §4.7
// "2^32ns overflow rule").
const maxOffset = time.Duration(math.MaxUint32) * time.Nanosecond

// preferredCapacityFor mirrors container.PreferredCapacity's formula
// (BufferSizeBytes / sizeof(T), clamped to [1, BufferSizeBytes]) for a
// runtime-observed event size, since a Logger's Entry.Data is logged as
// `any` and its concrete size is only known once an event arrives.
func preferredCapacityFor(size int) int {
	if size == 0 {
		return container.BufferSizeBytes
	}
	if size <= container.BufferSizeBytes {
		return container.BufferSizeBytes / size
	}
	return 1
}

// eventSize reports the size in bytes of data's concrete type, 0 for a
// nil interface.
func eventSize(data any) int {
	if data == nil {
		return 0
	}
	return int(reflect.TypeOf(data).Size())
}

// Entry is one recorded event: data, and its time since the logger's
// current base as a packed nanosecond offset.
type Entry struct {
	OffsetNanos uint32
	Data        any
}

// Sink receives a logger's flushed entries along with the base time they
// are relative to. A nil Sink makes a Logger a pure no-op, so instrumenting
// a hot path costs nothing when nobody is listening — the same pattern
// churn.Enable uses to gate Prometheus collection.
type Sink func(base time.Time, entries []Entry)

// Logger is a per-worker buffered event logger. It is not safe for
// concurrent Log calls from multiple goroutines simultaneously logging to
// the SAME Logger — each worker owns exactly one, matching the
// single-threaded-per-worker execution model the rest of this module
// assumes — but Flush may be called concurrently (e.g. by a
// registry-driven shutdown) without corrupting in-flight state.
type Logger struct {
	mu        sync.Mutex
	sink      Sink
	base      time.Time
	entries   []Entry
	capacity  int // 0 until the first logged event bootstraps it
	preferred int // largest preferredCapacityFor seen across logged events
	now       func() time.Time
	recorder  *metrics.Recorder
}

// NewLogger builds a Logger that flushes to sink. sink may be nil.
// Capacity is not fixed at construction: it is derived from the size of
// the first event logged, then grows geometrically towards the largest
// preferred capacity any subsequently logged event type implies.
func NewLogger(sink Sink) *Logger {
	return &Logger{sink: sink, now: time.Now}
}

// WithRecorder attaches a Prometheus recorder that observes one
// flowfabric_logger_flushes_total increment per flush. A nil recorder
// (the zero value) restores no-op behavior.
func (l *Logger) WithRecorder(recorder *metrics.Recorder) *Logger {
	l.mu.Lock()
	l.recorder = recorder
	l.mu.Unlock()
	return l
}

// Log records data at the current time, flushing first if the buffer is
// full or recording it would overflow the 32-bit offset range.
func (l *Logger) Log(data any) {
	if l.sink == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if preferred := preferredCapacityFor(eventSize(data)); preferred > l.preferred {
		l.preferred = preferred
	}
	if l.capacity == 0 {
		l.capacity = l.preferred
	}

	now := l.now()
	if l.base.IsZero() || len(l.entries) == 0 {
		l.base = now
	}
	offset := now.Sub(l.base)
	full := len(l.entries) >= l.capacity
	if offset >= maxOffset || full {
		l.flushLocked()
		l.base = now
		offset = 0
		if full {
			l.capacity = container.GrowTarget(l.capacity, l.preferred)
		}
	}
	l.entries = append(l.entries, Entry{OffsetNanos: uint32(offset.Nanoseconds()), Data: data})
}

// Flush emits any buffered entries to the sink. The next event logged
// into the emptied buffer becomes the base for the following batch's
// offsets.
func (l *Logger) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flushLocked()
}

func (l *Logger) flushLocked() {
	if len(l.entries) == 0 {
		return
	}
	batch := l.entries
	base := l.base
	l.entries = nil
	l.recorder.ObserveLoggerFlush()
	if l.sink != nil {
		l.sink(base, batch)
	}
}
