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

// Pusher is the ownership-transferring push contract of spec.md §4.2.
//
// Push(Some(c), allocation) pushes a filled batch; the implementor may
// (and typically does) hand back the allocation of the *previous* batch
// through allocation, so the caller has a recycled shell to refill on its
// next call. Push(None, &None) is the flush sentinel: "no more data, at
// least for now" — not termination. Implementors may buffer; callers must
// not assume synchronous delivery.
type Pusher[C any, A any] interface {
	Push(element Option[C], allocation *Option[A])
}

// Puller is the ownership-transferring pull contract of spec.md §4.2.
//
// Pull returns (None, _) when no data is available now — the caller
// should yield rather than block. The returned allocation slot is a
// pointer into the puller's own state: the caller may write the hollowed
// shell of the batch it just consumed into it, and the puller promises
// not to retain that value past the next call to Pull.
type Puller[C any, A any] interface {
	Pull() (Option[C], *Option[A])
}

// Send is the Push convenience matching timely's Push::send: push a
// filled element with no allocation to recycle.
func Send[C any, A any](p Pusher[C, A], element C) {
	p.Push(Some(element), &Option[A]{})
}

// Done is the Push convenience matching timely's Push::done: push the
// flush sentinel.
func Done[C any, A any](p Pusher[C, A]) {
	p.Push(None[C](), &Option[A]{})
}
