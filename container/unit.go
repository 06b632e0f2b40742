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

// Unit is the degenerate container for signal-only streams: it carries a
// record count with no payload, used where an edge only needs to convey
// "N records happened" (e.g. progress pulses) without data.
type Unit struct {
	n int
}

// NewUnit reports n records with no payload.
func NewUnit(n int) Unit { return Unit{n: n} }

func (u Unit) Len() int      { return u.n }
func (u Unit) IsEmpty() bool { return u.n == 0 }
func (u Unit) Hollow() Unit  { return Unit{} }

// Assemble for Unit is trivial: there is nothing to swap or clone, so the
// result is simply the source's count.
func (u Unit) Assemble(source RefOrMut[Unit]) Unit {
	return *source.Get()
}

// AssembleNewUnit is the allocation-free fallback, identical to Assemble
// since Unit carries no backing storage to recycle.
func AssembleNewUnit(source RefOrMut[Unit]) Unit {
	return *source.Get()
}
