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

package allocator

import "fmt"

// Variant selects which allocator kind Config builds, mirroring
// persistence.BuildPersister's string-selector dispatch pattern.
type Variant string

const (
	VariantThread        Variant = "thread"
	VariantProcess       Variant = "process"
	VariantBinary        Variant = "binary"
	VariantProcessBinary Variant = "process-binary"
)

// Config describes the cluster shape to build (spec.md §4.3 "Config").
// Not every field applies to every Variant: Threads applies to Process
// and ProcessBinary, Processes applies to Binary and ProcessBinary.
type Config struct {
	Variant   Variant
	Threads   int // workers sharing one process
	Processes int // processes in the cluster
}

// AllocatorInitError reports a Config that could not be realized: it
// carries the rejected Config and a textual Reason, and wraps no
// underlying error.
type AllocatorInitError struct {
	Config Config
	Reason string
}

func (e *AllocatorInitError) Error() string {
	return fmt.Sprintf("allocator: cannot build %s config %+v: %s", e.Config.Variant, e.Config, e.Reason)
}

// New builds every allocator a Config describes. For Thread it returns a
// single-element slice; for Process it returns Config.Threads
// allocators; for Binary it returns Config.Processes; for ProcessBinary
// it returns Config.Processes*Config.Threads, ordered process-major
// (all of process 0's threads, then process 1's, ...).
func New(cfg Config) ([]Allocator, error) {
	switch cfg.Variant {
	case VariantThread:
		return []Allocator{NewThread()}, nil
	case VariantProcess:
		if cfg.Threads < 1 {
			return nil, &AllocatorInitError{Config: cfg, Reason: "Threads must be >= 1"}
		}
		group := NewProcessGroup(cfg.Threads)
		out := make([]Allocator, len(group))
		for i, p := range group {
			out[i] = p
		}
		return out, nil
	case VariantBinary:
		if cfg.Processes < 1 {
			return nil, &AllocatorInitError{Config: cfg, Reason: "Processes must be >= 1"}
		}
		group := NewBinaryGroup(cfg.Processes)
		out := make([]Allocator, len(group))
		for i, b := range group {
			out[i] = b
		}
		return out, nil
	case VariantProcessBinary:
		if cfg.Processes < 1 || cfg.Threads < 1 {
			return nil, &AllocatorInitError{Config: cfg, Reason: "Processes and Threads must both be >= 1"}
		}
		cluster := NewProcessBinaryCluster(cfg.Processes, cfg.Threads)
		var out []Allocator
		for _, perProcess := range cluster {
			for _, pb := range perProcess {
				out = append(out, pb)
			}
		}
		return out, nil
	default:
		return nil, &AllocatorInitError{Config: cfg, Reason: fmt.Sprintf("unknown variant %q", cfg.Variant)}
	}
}
