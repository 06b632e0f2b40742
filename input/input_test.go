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

package input

import "testing"

// TestCapabilityLifecycleMultipliesByPeers exercises the scenario from
// spec.md's E4 example: a capability created at t=0, advanced to t=1,
// then dropped, with peers=4. Every internal delta must land in
// SharedProgress multiplied by peers and net to zero once every
// capability has been dropped; produced deltas are recorded once per
// worker, unmultiplied.
func TestCapabilityLifecycleMultipliesByPeers(t *testing.T) {
	handle, cap, _, op := New[int, int](4)

	if op.Terminal() {
		t.Fatalf("operator must not be terminal while a capability is held")
	}

	sess, done := handle.Session(cap)
	sess.Give(1)
	done()
	op.Schedule()

	cap2 := cap.Delayed(1)
	sess2, done2 := handle.Session(cap2)
	sess2.Give(2)
	done2()
	op.Schedule()

	cap2.Drop()
	op.Schedule()

	if !op.Terminal() {
		t.Fatalf("operator must be terminal once every capability is dropped")
	}

	shared := op.SharedProgress()
	if !shared.Internals.IsEmpty() {
		t.Fatalf("want internal deltas to net to zero, got %+v", shared.Internals.Compact())
	}

	produced := shared.Produceds.Compact()
	byKey := map[int]int64{}
	for _, d := range produced {
		byKey[d.Key] = d.Value
	}
	if byKey[0] != 1 || byKey[1] != 1 {
		t.Fatalf("want produced deltas {0:+1, 1:+1}, got %+v", byKey)
	}
}

func TestCapabilityDropIsIdempotent(t *testing.T) {
	_, cap, _, op := New[int, int](2)
	cap.Drop()
	cap.Drop()
	if !op.Terminal() {
		t.Fatalf("want terminal after the first drop regardless of repeats")
	}
}

func TestCapabilityCloneHoldsAnIndependentClaim(t *testing.T) {
	_, cap, _, op := New[int, int](1)
	clone := cap.Clone()
	cap.Drop()
	if op.Terminal() {
		t.Fatalf("operator must not be terminal while the clone is still held")
	}
	clone.Drop()
	if !op.Terminal() {
		t.Fatalf("operator must be terminal once both the original and its clone are dropped")
	}
}
