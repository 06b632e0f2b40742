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

package container

// Sequence is the primitive container: a homogeneously typed batch backed
// by a slice. Its own hollow form is itself with the slice cleared but its
// capacity retained, mirroring Vec<T>'s Container impl in the original
// crate (container/src/lib.rs).
type Sequence[T any] struct {
	data []T
}

// NewSequence wraps an existing slice as a Sequence, taking ownership of
// its backing array.
func NewSequence[T any](data []T) Sequence[T] {
	return Sequence[T]{data: data}
}

// Len reports the record count.
func (s Sequence[T]) Len() int { return len(s.data) }

// IsEmpty reports Len() == 0.
func (s Sequence[T]) IsEmpty() bool { return len(s.data) == 0 }

// Items exposes the backing slice for iteration. Callers must not retain
// it past the container's lifetime.
func (s Sequence[T]) Items() []T { return s.data }

// Push appends a single record, growing capacity geometrically towards
// the type's preferred capacity when room runs out.
func (s *Sequence[T]) Push(item T) {
	if len(s.data) == cap(s.data) {
		preferred := PreferredCapacity[T]()
		target := GrowTarget(cap(s.data), preferred)
		if target <= cap(s.data) {
			target = cap(s.data) + 1
		}
		grown := make([]T, len(s.data), target)
		copy(grown, s.data)
		s.data = grown
	}
	s.data = append(s.data, item)
}

// Full reports whether the sequence has reached its preferred capacity.
func (s Sequence[T]) Full() bool {
	return len(s.data) >= PreferredCapacity[T]()
}

// Hollow drains the sequence in place, returning the empty-but-capacity-
// preserving allocation. Sequence is its own allocation type.
func (s Sequence[T]) Hollow() Sequence[T] {
	return Sequence[T]{data: s.data[:0]}
}

// Assemble refills this allocation (a cleared, capacity-bearing Sequence)
// from source: a mutable source swaps its backing slice in directly
// (zero-copy), an immutable one is copied element-by-element.
func (a Sequence[T]) Assemble(source RefOrMut[Sequence[T]]) Sequence[T] {
	src := source.Get()
	if source.IsMut() {
		result := *src
		*src = a
		return result
	}
	buf := append(a.data[:0], src.data...)
	return Sequence[T]{data: buf}
}

// AssembleNewSequence is the allocation-free fallback: it always copies,
// since there is no allocation to swap into.
func AssembleNewSequence[T any](source RefOrMut[Sequence[T]]) Sequence[T] {
	src := source.Get()
	buf := make([]T, len(src.data))
	copy(buf, src.data)
	return Sequence[T]{data: buf}
}
