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

// Package persist backs cmd/flowdemo's word-count totals with Redis. The
// core dataflow packages have no persistence of their own (out of scope
// per spec.md §1); this package exists only for the demo binary.
package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Evaler abstracts the minimal surface needed from a Redis client, so
// tests can swap in a fake rather than requiring a live Redis.
type Evaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)
}

// GoRedisEvaler wraps github.com/redis/go-redis/v9 as an Evaler.
type GoRedisEvaler struct{ client *redis.Client }

// NewGoRedisEvaler builds an Evaler backed by a Redis client at addr.
func NewGoRedisEvaler(addr string) *GoRedisEvaler {
	return &GoRedisEvaler{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (g *GoRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	return g.client.Eval(ctx, script, keys, args...).Result()
}

// WordCounts commits a worker's partial word-count batch idempotently:
// each (redisKey, commitID, word) triple is applied at most once, so a
// worker retrying a failed commit never double-counts the same batch.
type WordCounts struct {
	client    Evaler
	markerTTL time.Duration
}

// NewWordCounts builds a WordCounts committer. markerTTL bounds how long
// idempotency markers are retained; it defaults to 24h.
func NewWordCounts(client Evaler, markerTTL time.Duration) *WordCounts {
	if markerTTL <= 0 {
		markerTTL = 24 * time.Hour
	}
	return &WordCounts{client: client, markerTTL: markerTTL}
}

// wordCountScript applies HINCRBY exactly once per idempotency marker:
// SETNX the marker, and only on the winning SETNX does it bump the
// counter and set the marker's expiry.
const wordCountScript = `
local counterKey = KEYS[1]
local markerKey = KEYS[2]
local word = ARGV[1]
local delta = tonumber(ARGV[2])
local ttlSeconds = tonumber(ARGV[3])
local set = redis.call('SETNX', markerKey, 1)
if set == 1 then
  redis.call('HINCRBY', counterKey, word, delta)
  if ttlSeconds and ttlSeconds > 0 then
    redis.call('EXPIRE', markerKey, ttlSeconds)
  end
  return 1
else
  return 0
end
`

// CounterKey is the Redis hash holding word -> running total under redisKey.
func CounterKey(redisKey string) string { return fmt.Sprintf("%s:totals", redisKey) }

// CommitMarkerKey is the idempotency marker for one (commitID, word) pair.
func CommitMarkerKey(redisKey, commitID, word string) string {
	return fmt.Sprintf("%s:commit:%s:%s", redisKey, commitID, word)
}

// CommitBatch applies counts (word -> delta) under commitID, which callers
// must make unique per batch (e.g. "worker-<index>-<round>") and reuse
// unchanged when retrying that batch.
func (w *WordCounts) CommitBatch(ctx context.Context, redisKey, commitID string, counts map[string]int64) error {
	if len(counts) == 0 {
		return nil
	}
	if commitID == "" {
		return errors.New("persist: commitID must be set")
	}
	counterKey := CounterKey(redisKey)
	for word, delta := range counts {
		keys := []string{counterKey, CommitMarkerKey(redisKey, commitID, word)}
		args := []interface{}{word, delta, int(w.markerTTL.Seconds())}
		if _, err := w.client.Eval(ctx, wordCountScript, keys, args...); err != nil {
			return fmt.Errorf("persist: commit word=%q commit=%s: %w", word, commitID, err)
		}
	}
	return nil
}
