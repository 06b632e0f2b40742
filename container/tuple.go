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

// Tuple2 is a composite, column-oriented container pairing two Sequences
// that are kept at matched length. Per spec.md §4.1, tuples of containers
// delegate structurally: Len/IsEmpty forward to the first column, and
// Hollow and Assemble forward field-by-field.
type Tuple2[A, B any] struct {
	First  Sequence[A]
	Second Sequence[B]
}

// NewTuple2 pairs two already-matched-length sequences.
func NewTuple2[A, B any](first Sequence[A], second Sequence[B]) Tuple2[A, B] {
	return Tuple2[A, B]{First: first, Second: second}
}

func (t Tuple2[A, B]) Len() int      { return t.First.Len() }
func (t Tuple2[A, B]) IsEmpty() bool { return t.First.IsEmpty() }

func (t Tuple2[A, B]) Hollow() Tuple2[A, B] {
	return Tuple2[A, B]{First: t.First.Hollow(), Second: t.Second.Hollow()}
}

// Assemble delegates to each field's own Assemble, pairing mutability
// consistently since both fields of a tuple travel together.
func (t Tuple2[A, B]) Assemble(source RefOrMut[Tuple2[A, B]]) Tuple2[A, B] {
	src := source.Get()
	if source.IsMut() {
		return Tuple2[A, B]{
			First:  t.First.Assemble(Mut(&src.First)),
			Second: t.Second.Assemble(Mut(&src.Second)),
		}
	}
	return Tuple2[A, B]{
		First:  t.First.Assemble(Ref(&src.First)),
		Second: t.Second.Assemble(Ref(&src.Second)),
	}
}

// AssembleNewTuple2 is the allocation-free fallback.
func AssembleNewTuple2[A, B any](source RefOrMut[Tuple2[A, B]]) Tuple2[A, B] {
	src := source.Get()
	var mutability RefOrMut[Sequence[A]]
	var mutabilityB RefOrMut[Sequence[B]]
	if source.IsMut() {
		mutability = Mut(&src.First)
		mutabilityB = Mut(&src.Second)
	} else {
		mutability = Ref(&src.First)
		mutabilityB = Ref(&src.Second)
	}
	return Tuple2[A, B]{
		First:  AssembleNewSequence[A](mutability),
		Second: AssembleNewSequence[B](mutabilityB),
	}
}
