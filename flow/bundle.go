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

package flow

// Bundle is the on-wire unit: a container paired with a timestamp, a
// per-(source,channel) monotonic sequence number, and the originating
// worker index. See spec.md §3 "Message / Bundle" and GLOSSARY.
type Bundle[T any, C any] struct {
	Time T
	Data C
	Seq  uint64
	From int
}

// NewBundle wraps data at time t. Seq and From are stamped later by the
// counting/logging wrapper (wrap.LogPusher) at push time, matching
// timely's LogPusher::push which fills these in just before handoff to
// the allocator endpoint (see timely/src/dataflow/channels/pact.rs).
func NewBundle[T any, C any](t T, data C) Bundle[T, C] {
	return Bundle[T, C]{Time: t, Data: data}
}

// Len delegates to the wrapped container so wrappers that only see a
// Bundle (not its concrete C) can still account record counts.
type lenner interface{ Len() int }

func (b Bundle[T, C]) Len() int {
	if l, ok := any(b.Data).(lenner); ok {
		return l.Len()
	}
	return 0
}

// Channel identifies a logical edge: a stable id plus the constructing
// operator's nesting path, used only for logging (spec.md §3 "Channel").
type Channel struct {
	ID      uint64
	Address []int
}
