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

// Package metrics wraps the module's Prometheus collectors behind a
// nil-safe Recorder, the same "opt-in, zero-overhead-when-disabled" shape
// as the teacher's churn package — but registration is deferred to first
// use (NewRecorder) rather than an eager package init(), so a test binary
// that builds several isolated allocator.Allocators never double-
// registers the same collector names against the default registerer.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	messagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flowfabric_messages_total",
		Help: "Total bundles pushed through a counted pusher.",
	})
	containerLen = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "flowfabric_container_len",
		Help:    "Distribution of record counts per pushed container.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
	loggerFlushesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flowfabric_logger_flushes_total",
		Help: "Total times a logging.Logger flushed its buffered entries.",
	})
	registryEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flowfabric_registry_entries",
		Help: "Current count of Flushable entries held in a registry.Registry.",
	})
)

// Recorder is a handle onto this package's Prometheus collectors. Every
// method is safe to call on a nil *Recorder, in which case it is a no-op:
// wrap.CountingPusher, logging.Logger, and registry.Registry all accept an
// optional *Recorder this way, so instrumenting them costs nothing when
// nobody asked for metrics.
type Recorder struct{}

// NewRecorder registers this package's collectors with the default
// Prometheus registerer the first time it is called, and returns a live
// Recorder on every call, including the first — so constructing several
// Recorders across one process (or across a test binary's many test
// functions) never panics on a duplicate registration.
func NewRecorder() *Recorder {
	registerOnce.Do(func() {
		prometheus.MustRegister(messagesTotal, containerLen, loggerFlushesTotal, registryEntries)
	})
	return &Recorder{}
}

// ObserveMessage records one pushed bundle of the given record length.
func (r *Recorder) ObserveMessage(length int) {
	if r == nil {
		return
	}
	messagesTotal.Inc()
	containerLen.Observe(float64(length))
}

// ObserveLoggerFlush records one logging.Logger flush.
func (r *Recorder) ObserveLoggerFlush() {
	if r == nil {
		return
	}
	loggerFlushesTotal.Inc()
}

// SetRegistryEntries sets the current registry.Registry entry count.
func (r *Recorder) SetRegistryEntries(n int) {
	if r == nil {
		return
	}
	registryEntries.Set(float64(n))
}
