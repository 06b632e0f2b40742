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

// Package container defines the batch type carried across dataflow edges
// and the allocation-recycling protocol that lets a consumer hand an
// emptied container back to its producer for reuse.
//
// A container C declares an Allocation type (its hollow, capacity-retained
// shell). Reassembling a container from an allocation is total: it either
// recycles the allocation (Assemble) or, when none was threaded back,
// builds a fresh container from scratch. Go has no associated-type
// mechanism, so the pairing between a container and its allocation is
// expressed with two type parameters wherever both are needed.
package container

// Container is the capability a batch type advertises to be carried by the
// fabric: a record count and a way to drain itself into its hollow,
// capacity-preserving allocation.
type Container[A any] interface {
	// Len reports the number of records, never bytes.
	Len() int
	// IsEmpty reports Len() == 0.
	IsEmpty() bool
	// Hollow consumes the container, returning its emptied shell. The
	// shell retains whatever backing capacity the container held.
	Hollow() A
}

// Allocation is the hollow shell of a container C, capable of being
// refilled either by swapping in a mutable source or by cloning an
// immutable one.
type Allocation[C any] interface {
	// Assemble refills this allocation from source, returning the
	// resulting container. If source is mutable the allocation may swap
	// its buffer with it; if immutable it must clone.
	Assemble(source RefOrMut[C]) C
}

// FreshFunc synthesizes a new container from source without an
// allocation to recycle. It stands in for Rust's
// Allocation::assemble_new, which in timely is a static method on the
// allocation type; Go has no static dispatch on type parameters, so
// callers that already know the concrete container type supply it
// explicitly at the one or two call sites that need it (pact connect,
// tee clone-fan-out).
type FreshFunc[C any] func(source RefOrMut[C]) C

// Assemble is the total reassembly operation described by spec.md §4.1:
// recycle alloc if present, otherwise fall back to fresh.
func Assemble[C any, A Allocation[C]](alloc *A, source RefOrMut[C], fresh FreshFunc[C]) C {
	if alloc != nil {
		return (*alloc).Assemble(source)
	}
	return fresh(source)
}

// RefOrMut is a sum type over an immutable or a mutable reference to a
// value of type T, modeling timely's RefOrMut<'a, T>: allocations
// sometimes arrive as a borrowed reference (clone-in) and sometimes as an
// exclusive one (swap-in-place).
type RefOrMut[T any] struct {
	ref *T
	mut *T
}

// Ref wraps an immutable reference. The holder must clone out of it.
func Ref[T any](v *T) RefOrMut[T] { return RefOrMut[T]{ref: v} }

// Mut wraps a mutable reference. The holder may swap buffers with it.
func Mut[T any](v *T) RefOrMut[T] { return RefOrMut[T]{mut: v} }

// Get returns the underlying pointer regardless of which constructor built
// this RefOrMut.
func (r RefOrMut[T]) Get() *T {
	if r.mut != nil {
		return r.mut
	}
	return r.ref
}

// IsMut reports whether this reference permits an in-place swap.
func (r RefOrMut[T]) IsMut() bool { return r.mut != nil }

// Swap extracts the contents of r into element, consuming r: if r is
// mutable, the two values trade places; if immutable, element is
// overwritten with a clone (via the caller-supplied clone function since
// Go cannot express Clone generically).
func Swap[T any](r RefOrMut[T], element *T, cloneFrom func(dst, src *T)) {
	if r.mut != nil {
		*r.mut, *element = *element, *r.mut
		return
	}
	cloneFrom(element, r.ref)
}
