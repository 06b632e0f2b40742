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

import "testing"

type intSeq struct{ n int }

func (s intSeq) Len() int { return s.n }

func TestBundleLenDelegatesToContainer(t *testing.T) {
	b := NewBundle(3, intSeq{n: 5})
	if b.Len() != 5 {
		t.Fatalf("want 5, got %d", b.Len())
	}
}

func TestOptionTakeClearsSlot(t *testing.T) {
	opt := Some(42)
	taken := opt.Take()
	if !taken.Valid || taken.Value != 42 {
		t.Fatalf("expected taken value 42, got %+v", taken)
	}
	if opt.Valid {
		t.Fatalf("expected slot cleared after Take")
	}
}

type recordingPusher struct {
	pushed []Option[int]
}

func (p *recordingPusher) Push(element Option[int], allocation *Option[string]) {
	p.pushed = append(p.pushed, element)
}

func TestSendAndDoneConventions(t *testing.T) {
	p := &recordingPusher{}
	Send[int, string](p, 7)
	Done[int, string](p)
	if len(p.pushed) != 2 {
		t.Fatalf("want 2 pushes, got %d", len(p.pushed))
	}
	if !p.pushed[0].Valid || p.pushed[0].Value != 7 {
		t.Fatalf("first push should carry 7, got %+v", p.pushed[0])
	}
	if p.pushed[1].Valid {
		t.Fatalf("second push should be the flush sentinel")
	}
}
