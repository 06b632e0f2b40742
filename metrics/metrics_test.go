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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilRecorderIsANoOp(t *testing.T) {
	var r *Recorder
	r.ObserveMessage(3)
	r.ObserveLoggerFlush()
	r.SetRegistryEntries(5)
}

func TestObserveMessageIncrementsMessagesTotal(t *testing.T) {
	rec := NewRecorder()
	before := testutil.ToFloat64(messagesTotal)
	rec.ObserveMessage(4)
	after := testutil.ToFloat64(messagesTotal)
	if after-before != 1 {
		t.Fatalf("messagesTotal delta = %v, want 1", after-before)
	}
}

func TestNewRecorderIsSafeToCallRepeatedly(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	if a == nil || b == nil {
		t.Fatalf("want both calls to return a live Recorder")
	}
	b.ObserveLoggerFlush()
}

func TestSetRegistryEntriesReportsCurrentCount(t *testing.T) {
	rec := NewRecorder()
	rec.SetRegistryEntries(7)
	if got := testutil.ToFloat64(registryEntries); got != 7 {
		t.Fatalf("registryEntries = %v, want 7", got)
	}
}
