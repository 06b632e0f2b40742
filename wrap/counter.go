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

package wrap

import (
	"flowfabric/flow"
	"flowfabric/metrics"
)

// CountingPusher wraps a flow.Pusher, recording +len(records) against the
// pushed Bundle's timestamp into its own "produced" ChangeBatch. A
// CountingPuller on the matching edge records +len(records) into its own,
// independent "consumed" ChangeBatch — the two handles are exposed to
// callers separately so a progress tracker can observe produced-count and
// consumed-count independently, rather than a single net figure.
type CountingPusher[T comparable, C any, A any] struct {
	inner    flow.Pusher[flow.Bundle[T, C], A]
	produced *ChangeBatch[T]
	recorder *metrics.Recorder
}

// NewCountingPusher wraps inner, recording deltas into produced.
func NewCountingPusher[T comparable, C any, A any](inner flow.Pusher[flow.Bundle[T, C], A], produced *ChangeBatch[T]) *CountingPusher[T, C, A] {
	return &CountingPusher[T, C, A]{inner: inner, produced: produced}
}

// WithRecorder attaches a Prometheus recorder observing per-push
// flowfabric_messages_total/flowfabric_container_len samples. A nil
// recorder restores no-op behavior.
func (p *CountingPusher[T, C, A]) WithRecorder(recorder *metrics.Recorder) *CountingPusher[T, C, A] {
	p.recorder = recorder
	return p
}

func (p *CountingPusher[T, C, A]) Push(element flow.Option[flow.Bundle[T, C]], allocation *flow.Option[A]) {
	if element.Valid {
		if n := element.Value.Len(); n > 0 {
			p.produced.Update(element.Value.Time, int64(n))
			p.recorder.ObserveMessage(n)
		}
	}
	p.inner.Push(element, allocation)
}

// Produced returns the handle to this pusher's "produced" ChangeBatch.
func (p *CountingPusher[T, C, A]) Produced() *ChangeBatch[T] { return p.produced }

// CountingPuller wraps a flow.Puller, recording +len(records) against the
// pulled Bundle's timestamp into its own "consumed" ChangeBatch, distinct
// from and never shared with a CountingPusher's "produced" batch.
type CountingPuller[T comparable, C any, A any] struct {
	inner    flow.Puller[flow.Bundle[T, C], A]
	consumed *ChangeBatch[T]
}

// NewCountingPuller wraps inner, recording deltas into consumed.
func NewCountingPuller[T comparable, C any, A any](inner flow.Puller[flow.Bundle[T, C], A], consumed *ChangeBatch[T]) *CountingPuller[T, C, A] {
	return &CountingPuller[T, C, A]{inner: inner, consumed: consumed}
}

func (p *CountingPuller[T, C, A]) Pull() (flow.Option[flow.Bundle[T, C]], *flow.Option[A]) {
	v, back := p.inner.Pull()
	if v.Valid {
		if n := v.Value.Len(); n > 0 {
			p.consumed.Update(v.Value.Time, int64(n))
		}
	}
	return v, back
}

// Consumed returns the handle to this puller's "consumed" ChangeBatch.
func (p *CountingPuller[T, C, A]) Consumed() *ChangeBatch[T] { return p.consumed }
