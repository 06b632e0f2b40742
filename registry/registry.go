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

// Package registry maps logger names ("timely/communication", a custom
// application name, ...) to the flushable logger registered under that
// name, so a worker can look one up without every caller threading the
// same *logging.Logger through its constructor by hand (spec.md §4.8).
package registry

import (
	"sync"
	"sync/atomic"

	"flowfabric/metrics"
)

// Flushable is the narrow surface the registry needs from a logger: the
// concrete *logging.Logger satisfies it directly.
type Flushable interface {
	Flush()
}

// Registry is a concurrency-safe name -> Flushable map, a sync.Map-backed
// fast-path-no-allocation lookup on the read side.
type Registry struct {
	entries  sync.Map
	count    atomic.Int64
	recorder *metrics.Recorder
}

// New builds an empty Registry.
func New() *Registry {
	return &Registry{}
}

// WithRecorder attaches a Prometheus recorder tracking
// flowfabric_registry_entries as a gauge. A nil recorder restores no-op
// behavior.
func (r *Registry) WithRecorder(recorder *metrics.Recorder) *Registry {
	r.recorder = recorder
	return r
}

// Insert registers logger under name, replacing any previous registrant.
func (r *Registry) Insert(name string, logger Flushable) {
	if _, replaced := r.entries.Swap(name, logger); !replaced {
		r.count.Add(1)
		r.recorder.SetRegistryEntries(int(r.count.Load()))
	}
}

// Get returns the logger registered under name, or nil if none is.
func (r *Registry) Get(name string) Flushable {
	v, ok := r.entries.Load(name)
	if !ok {
		return nil
	}
	return v.(Flushable)
}

// Remove unregisters name, returning the logger that was there, if any.
func (r *Registry) Remove(name string) Flushable {
	v, ok := r.entries.LoadAndDelete(name)
	if !ok {
		return nil
	}
	r.count.Add(-1)
	r.recorder.SetRegistryEntries(int(r.count.Load()))
	return v.(Flushable)
}

// FlushAll flushes every registered logger, for use at a clean worker
// shutdown so no buffered events are lost.
func (r *Registry) FlushAll() {
	r.entries.Range(func(_, value any) bool {
		value.(Flushable).Flush()
		return true
	})
}
