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
	"sync/atomic"

	"flowfabric/flow"
	"flowfabric/logging"
)

// LogPusher wraps a flow.Pusher, stamping each outgoing Bundle's Seq and
// From fields and emitting a MessagesEvent for it. It is the layer that
// actually fills in the fields NewBundle leaves zero.
type LogPusher[T any, C any, A any] struct {
	inner     flow.Pusher[flow.Bundle[T, C], A]
	channelID uint64
	from      int
	to        int
	seq       atomic.Uint64
	logger    *logging.Logger
}

// NewLogPusher wraps inner for the edge identified by channelID, stamping
// messages as originating from worker `from` and addressed to worker
// `to` (-1 for fan-out contracts with no single destination).
func NewLogPusher[T any, C any, A any](inner flow.Pusher[flow.Bundle[T, C], A], channelID uint64, from, to int, logger *logging.Logger) *LogPusher[T, C, A] {
	return &LogPusher[T, C, A]{inner: inner, channelID: channelID, from: from, to: to, logger: logger}
}

func (p *LogPusher[T, C, A]) Push(element flow.Option[flow.Bundle[T, C]], allocation *flow.Option[A]) {
	length := 0
	var seq uint64
	if element.Valid {
		seq = p.seq.Add(1)
		element.Value.Seq = seq
		element.Value.From = p.from
		length = element.Value.Len()
	}
	p.inner.Push(element, allocation)
	if element.Valid {
		p.logger.Log(logging.MessagesEvent{
			ChannelID: p.channelID,
			Seq:       seq,
			From:      p.from,
			To:        p.to,
			Length:    length,
			IsSend:    true,
		})
	}
}

// LogPuller wraps a flow.Puller, emitting a MessagesEvent for every
// received Bundle. Seq/From are already stamped by the matching
// LogPusher; LogPuller only observes them.
type LogPuller[T any, C any, A any] struct {
	inner     flow.Puller[flow.Bundle[T, C], A]
	channelID uint64
	to        int
	logger    *logging.Logger
}

// NewLogPuller wraps inner for the edge identified by channelID, logging
// arrivals at worker `to`.
func NewLogPuller[T any, C any, A any](inner flow.Puller[flow.Bundle[T, C], A], channelID uint64, to int, logger *logging.Logger) *LogPuller[T, C, A] {
	return &LogPuller[T, C, A]{inner: inner, channelID: channelID, to: to, logger: logger}
}

func (p *LogPuller[T, C, A]) Pull() (flow.Option[flow.Bundle[T, C]], *flow.Option[A]) {
	v, back := p.inner.Pull()
	if v.Valid {
		p.logger.Log(logging.MessagesEvent{
			ChannelID: p.channelID,
			Seq:       v.Value.Seq,
			From:      v.Value.From,
			To:        p.to,
			Length:    v.Value.Len(),
			IsSend:    false,
		})
	}
	return v, back
}
