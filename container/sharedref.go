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

import "sync/atomic"

// Lenner is the minimal surface Shared needs from its wrapped container.
type Lenner interface {
	Len() int
	IsEmpty() bool
}

// sharedBox is the reference-counted backing store for Shared. Clone
// increments refs; Hollow decrements and, if the caller held the last
// reference, the box is simply discarded — there is no in-place recycling
// path for a non-owning wrapper, matching the "attempt to mutate in place
// if unique, otherwise replace" rule from container/src/lib.rs's Rc/Arc
// Container impl, simplified to the fact that a shared ref never owns
// mutable backing capacity worth recycling.
type sharedBox[T Lenner] struct {
	refs  atomic.Int32
	value T
}

// Shared is a non-owning, reference-counted wrapper container: cloning it
// is cheap (one atomic increment), and its Hollow is always the empty
// EmptyAllocation since there is nothing to hand back along the channel.
type Shared[T Lenner] struct {
	box *sharedBox[T]
}

// NewShared wraps v in a fresh, singly-owned Shared.
func NewShared[T Lenner](v T) Shared[T] {
	b := &sharedBox[T]{value: v}
	b.refs.Store(1)
	return Shared[T]{box: b}
}

// Clone increments the reference count and returns a handle to the same
// backing value.
func (s Shared[T]) Clone() Shared[T] {
	s.box.refs.Add(1)
	return s
}

// Value returns the wrapped container.
func (s Shared[T]) Value() T { return s.box.value }

func (s Shared[T]) Len() int      { return s.box.value.Len() }
func (s Shared[T]) IsEmpty() bool { return s.box.value.IsEmpty() }

// EmptyAllocation is the hollow companion of Shared[T]: it carries no
// state, since a shared reference has nothing to thread backward for
// reuse. It is parameterized by T only so it can satisfy
// container.Allocation[Shared[T]] for every T.
type EmptyAllocation[T Lenner] struct{}

// Hollow releases this handle's claim and returns the empty allocation.
func (s Shared[T]) Hollow() EmptyAllocation[T] {
	s.box.refs.Add(-1)
	return EmptyAllocation[T]{}
}

// Assemble is only ever reached as a fallback: a Shared is reconstructed
// by taking the source's handle directly, since there is no backing
// capacity to recycle.
func (EmptyAllocation[T]) Assemble(source RefOrMut[Shared[T]]) Shared[T] {
	return *source.Get()
}
