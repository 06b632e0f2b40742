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

import "flowfabric/wrap"

// SharedProgress is the single-output-port progress summary an unordered
// input operator publishes for its scheduler to read: Internals carries
// capability claims (what this worker still intends to produce),
// Produceds carries what it has actually sent downstream so far.
type SharedProgress[Time comparable] struct {
	Internals *wrap.ChangeBatch[Time]
	Produceds *wrap.ChangeBatch[Time]
}

// NewSharedProgress builds an empty SharedProgress.
func NewSharedProgress[Time comparable]() *SharedProgress[Time] {
	return &SharedProgress[Time]{
		Internals: wrap.NewChangeBatch[Time](),
		Produceds: wrap.NewChangeBatch[Time](),
	}
}

// Operator is the scheduled half of an unordered input: a zero-input,
// one-output node that, each time it is scheduled, drains its private
// capability/production deltas into SharedProgress for the progress
// tracker to consume.
type Operator[Time comparable] struct {
	internal *wrap.ChangeBatch[Time]
	produced *wrap.ChangeBatch[Time]
	peers    int
	shared   *SharedProgress[Time]
}

// Inputs is always 0 for an unordered input operator.
func (op *Operator[Time]) Inputs() int { return 0 }

// Outputs is always 1 for an unordered input operator.
func (op *Operator[Time]) Outputs() int { return 1 }

// NotifyMe is always false: the operator only reacts to external Give
// calls, never to scheduler notifications.
func (op *Operator[Time]) NotifyMe() bool { return false }

// Schedule drains the operator's capability deltas — multiplied by peers,
// since a capability claim exists once per worker but denotes a
// cluster-wide claim — and its produced-record deltas into SharedProgress.
// It always returns false: an unordered input never asks to be
// rescheduled on its own account.
func (op *Operator[Time]) Schedule() bool {
	for _, d := range op.internal.Compact() {
		op.shared.Internals.Update(d.Key, d.Value*int64(op.peers))
	}
	for _, d := range op.produced.Compact() {
		op.shared.Produceds.Update(d.Key, d.Value)
	}
	return false
}

// Terminal reports whether no capability claim is outstanding — the point
// at which the operator's frontier advances to the empty antichain and
// signals end-of-input. It checks both the deltas pending since the last
// Schedule and the claims already published in SharedProgress.Internals,
// so a drop of a claim that was already published shows up once Schedule
// has run.
func (op *Operator[Time]) Terminal() bool {
	return op.internal.IsEmpty() && op.shared.Internals.IsEmpty()
}

// SharedProgress exposes the operator's progress summary.
func (op *Operator[Time]) SharedProgress() *SharedProgress[Time] {
	return op.shared
}
