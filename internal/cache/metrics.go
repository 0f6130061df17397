// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import "sync/atomic"

// Metrics holds process-wide cache counters. Counters reset only at process
// start, are updated atomically by every cache operation, and are logged on
// pipeline shutdown. Embed one per cache implementation.
type Metrics struct {
	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
	errors atomic.Int64
}

func (m *Metrics) hit()     { m.hits.Add(1) }
func (m *Metrics) miss()    { m.misses.Add(1) }
func (m *Metrics) set()     { m.sets.Add(1) }
func (m *Metrics) errored() { m.errors.Add(1) }

// Snapshot returns a point-in-time copy of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Sets:   m.sets.Load(),
		Errors: m.errors.Load(),
	}
}

// MetricsSnapshot is an immutable view of the cache counters.
type MetricsSnapshot struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
	Errors int64 `json:"errors"`
}

// HitRate returns hits/(hits+misses), or 0 when no reads have happened.
func (s MetricsSnapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
