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

import "unsafe"

// BufferSizeBytes is the default byte budget a container buffer grows
// towards before a pact/session/logger considers it full. See spec.md §4.7.
const BufferSizeBytes = 8192

// PreferredCapacity computes the default preferred element count for a
// container of element type T: BufferSizeBytes / sizeof(T), clamped to
// [1, BufferSizeBytes]. Zero-sized elements (e.g. struct{}) receive the
// raw byte budget, matching timely_container::buffer::default_capacity.
func PreferredCapacity[T any]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return BufferSizeBytes
	}
	if size <= BufferSizeBytes {
		return BufferSizeBytes / size
	}
	return 1
}

// GrowTarget returns the next geometric capacity step towards preferred,
// given a current capacity. Buffers grow by doubling but never overshoot
// preferred, and never shrink below it once reached.
func GrowTarget(current, preferred int) int {
	if current >= preferred {
		return current
	}
	next := current * 2
	if next == 0 {
		next = 1
	}
	if next > preferred {
		next = preferred
	}
	return next
}
