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

// Package main runs a small end-to-end demonstration of the dataflow
// core: a word-count computation fed through an unordered input
// operator, tee'd into a hash-exchange pact that fans words out across
// worker goroutines by hash, each worker accumulating its own partial
// counts and committing them into Redis idempotently, so a worker that
// retries a failed commit never double-counts a batch it already applied.
//
// This binary exists only to exercise the library end to end; the core
// packages (allocator, container, flow, pact, wrap, tee, logging, input,
// registry) have no persistence or networking of their own.
package main

import (
	"context"
	"flag"
	"fmt"
	"hash/fnv"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"
	"unicode"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"flowfabric/allocator"
	"flowfabric/container"
	"flowfabric/flow"
	"flowfabric/input"
	"flowfabric/logging"
	"flowfabric/metrics"
	"flowfabric/pact"
	"flowfabric/persist"
	"flowfabric/registry"
)

const sampleText = `
the quick brown fox jumps over the lazy dog the dog barks at the fox
the fox runs away and the dog goes back to sleep under the warm sun
a quick brown dog and a lazy fox share the same warm afternoon nap
`

func main() {
	workers := flag.Int("workers", 4, "number of worker goroutines sharing the word-count computation")
	redisAddr := flag.String("redis_addr", "localhost:6379", "Redis address backing the word-count totals")
	redisKey := flag.String("redis_key", "flowfabric:wordcount", "Redis hash key the totals are written under")
	metricsAddr := flag.String("metrics_addr", "", "if non-empty, expose Prometheus /metrics on this address")
	idleTimeout := flag.Duration("idle_timeout", 20*time.Millisecond, "how long a worker waits for more records before treating the input as drained")
	flag.Parse()

	var recorder *metrics.Recorder
	if *metricsAddr != "" {
		recorder = metrics.NewRecorder()
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: *metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
		fmt.Printf("Prometheus metrics listening on %s\n", *metricsAddr)
	}

	allocators, err := allocator.New(allocator.Config{Variant: allocator.VariantProcess, Threads: *workers})
	if err != nil {
		log.Fatalf("allocator.New: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	counts := persist.NewWordCounts(persist.NewGoRedisEvaler(*redisAddr), 0)

	reg := registry.New().WithRecorder(recorder)
	words := tokenize(sampleText)

	run(allocators, reg, recorder, counts, *redisKey, *idleTimeout, words)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	printTotals(ctx, client, *redisKey)

	if *metricsAddr != "" {
		fmt.Println("batch complete; metrics server still running, Ctrl+C to exit")
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
	}
}

// run wires and drives one pass of the word-count dataflow: worker 0
// owns the unordered input operator and tees its output into its own
// Exchange pusher; every worker pulls whatever the hash-exchange routes
// to it and commits its share of the totals to Redis.
func run(allocators []allocator.Allocator, reg *registry.Registry, recorder *metrics.Recorder, counts *persist.WordCounts, redisKey string, idleTimeout time.Duration, words []string) {
	const channelID = 1
	ex := pact.Exchange[int, string]{Hash: hashWord}

	guards := allocator.Initialize(allocators, func(a allocator.Allocator) int {
		logger := logging.NewLogger(func(base time.Time, entries []logging.Entry) {
			fmt.Printf("worker %d flushed %d log entries based at %s\n", a.Index(), len(entries), base.Format(time.RFC3339Nano))
		}).WithRecorder(recorder)
		reg.Insert(fmt.Sprintf("worker-%d", a.Index()), logger)

		push, pull, _, _ := ex.Connect(a, channelID, nil, logger)

		if a.Index() == 0 {
			handle, token, tee, _ := input.New[int, string](a.Peers())
			tee.Add(push)
			sess, done := handle.Session(token)
			for _, w := range words {
				sess.Give(w)
			}
			done()
			token.Drop()

			// The exchange pact buffers each target's sub-container up to
			// its preferred capacity; pushing None flushes whatever is
			// still pending now that this worker is done producing.
			var discard flow.Option[container.Sequence[string]]
			push.Push(flow.None[flow.Bundle[int, container.Sequence[string]]](), &discard)
		}

		batch := drainUntilIdle(pull, idleTimeout)
		if len(batch) == 0 {
			return 0
		}
		commit(counts, redisKey, fmt.Sprintf("worker-%d", a.Index()), batch)
		return len(batch)
	})
	for i, distinctWords := range guards.Join() {
		fmt.Printf("worker %d committed %d distinct words\n", i, distinctWords)
	}
	reg.FlushAll()
}

// drainUntilIdle pulls records until idleTimeout passes with nothing new
// arriving. A real scheduler would learn "no more data" from the
// frontier the progress tracker publishes (out of scope for this
// library's core); a one-shot batch demo approximates it by waiting for
// the input to go quiet.
func drainUntilIdle(pull flow.Puller[flow.Bundle[int, container.Sequence[string]], container.Sequence[string]], idleTimeout time.Duration) map[string]int64 {
	counts := map[string]int64{}
	deadline := time.Now().Add(2 * time.Second)
	lastSeen := time.Now()
	for time.Now().Before(deadline) {
		v, _ := pull.Pull()
		if v.Valid {
			for _, w := range v.Value.Data.Items() {
				counts[w]++
			}
			lastSeen = time.Now()
			continue
		}
		if time.Since(lastSeen) > idleTimeout {
			break
		}
		time.Sleep(time.Millisecond)
	}
	return counts
}

// commit applies one worker's partial word counts under commitID, which
// must be unique per batch and reused unchanged on every retry of that
// batch, so a retry after a partial failure never double-counts a word it
// already committed.
func commit(counts *persist.WordCounts, redisKey, commitID string, batch map[string]int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := counts.CommitBatch(ctx, redisKey, commitID, batch); err != nil {
		log.Printf("commit to redis: %v", err)
	}
}

func printTotals(ctx context.Context, client *redis.Client, redisKey string) {
	totals, err := client.HGetAll(ctx, persist.CounterKey(redisKey)).Result()
	if err != nil {
		log.Printf("read totals from redis: %v", err)
		return
	}
	words := make([]string, 0, len(totals))
	for w := range totals {
		words = append(words, w)
	}
	sort.Strings(words)
	var b strings.Builder
	for _, w := range words {
		fmt.Fprintf(&b, "%-10s %s\n", w, totals[w])
	}
	fmt.Print(b.String())
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, strings.ToLower(f))
	}
	return out
}

func hashWord(w string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(w))
	return h.Sum64()
}
