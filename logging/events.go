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

// Package logging implements the per-worker structured event logger
// (spec.md §4.7 "Logger") and the typed events it carries.
package logging

// ChannelsEvent is emitted by every pact Connect call, once per edge on
// each worker that connects it, describing the channel's identity and
// construction path. Grounded
// on original_source/'s emission of a ChannelsEvent at connect_to time.
type ChannelsEvent struct {
	ChannelID uint64
	Address   []int
	Target    []int
	Kind      string // "Pipeline", "Exchange", "RendezvousExchange"
}

// MessagesEvent is emitted by the counting/logging wrapper (wrap.LogPusher
// and wrap.LogPuller) on every push/pull, recording how many records moved
// and in which direction.
type MessagesEvent struct {
	ChannelID uint64
	Seq       uint64
	From      int
	To        int
	Length    int
	IsSend    bool
}

// StateTransitionEvent supplements the required event set: operators and
// schedulers report activate/deactivate transitions so a trace can
// reconstruct when a worker was doing useful work versus idling.
type StateTransitionEvent struct {
	Name  string
	Start bool
}

// GuardedMessageEvent supplements the required event set: it brackets a
// single push/pull with a start/end pair, letting a trace attribute the
// time actually spent inside the call (as opposed to MessagesEvent, which
// only records the fact that a batch moved).
type GuardedMessageEvent struct {
	ChannelID uint64
	Start     bool
}
