// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache provides the tiered TTL result cache behind the search
// pipeline. Any key-value store with TTL support qualifies as a backend;
// Redis and Badger implementations ship here. Cache unavailability never
// fails a search: reads degrade to misses and writes are best-effort.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// Cache is the contract the pipeline consumes. Implementations must be
// safe for concurrent use; the orchestrator performs no locking.
type Cache interface {
	// Get returns the payload for key. found is false on a miss.
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)

	// Set stores payload under key with the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Metrics returns a snapshot of the process-wide counters.
	Metrics() MetricsSnapshot

	// Close releases the underlying store.
	Close() error
}

// keyVersion is bumped whenever the SearchResult serialization changes, so
// stale payloads from older builds never deserialize.
const keyVersion = "v1"

// Key derives the deterministic cache key for a search: a pure function of
// the normalized query text, the resolved search type, and the filters.
// Identical inputs produce identical keys across processes and restarts.
func Key(rawText string, searchType types.SearchType, filters types.SearchFilters) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(rawText)), " ")

	var b strings.Builder
	b.WriteString(normalized)
	b.WriteByte('|')
	b.WriteString(string(searchType))
	b.WriteByte('|')
	if filters.Organism != "" {
		fmt.Fprintf(&b, "organism=%s;", strings.ToLower(filters.Organism))
	}
	if filters.RecordType != "" {
		fmt.Fprintf(&b, "record_type=%s;", strings.ToLower(filters.RecordType))
	}
	if filters.MinSampleCount > 0 {
		fmt.Fprintf(&b, "min_samples=%d;", filters.MinSampleCount)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return "search:" + keyVersion + ":" + hex.EncodeToString(sum[:])
}

// TTLFor returns the expiry tier for a search type. Identifier-direct
// lookups and bibliographic metadata are stable and keep long TTLs;
// free-text result sets drift as new records are indexed.
func TTLFor(searchType types.SearchType, cfg types.CacheConfig) time.Duration {
	identifierTTL := cfg.IdentifierTTL
	if identifierTTL <= 0 {
		identifierTTL = 30 * 24 * time.Hour
	}
	publicationTTL := cfg.PublicationTTL
	if publicationTTL <= 0 {
		publicationTTL = 7 * 24 * time.Hour
	}
	freeTextTTL := cfg.FreeTextTTL
	if freeTextTTL <= 0 {
		freeTextTTL = 24 * time.Hour
	}

	switch searchType {
	case types.TypeIdentifier:
		return identifierTTL
	case types.TypePublication:
		return publicationTTL
	default:
		return freeTextTTL
	}
}

// Nop is a Cache that never stores anything. Used when caching is disabled;
// every Get is counted as a miss so the hit rate stays meaningful.
type Nop struct {
	metrics Metrics
}

// NewNop returns a no-op cache.
func NewNop() *Nop { return &Nop{} }

// Get implements Cache.
func (n *Nop) Get(context.Context, string) ([]byte, bool, error) {
	n.metrics.miss()
	return nil, false, nil
}

// Set implements Cache.
func (n *Nop) Set(context.Context, string, []byte, time.Duration) error {
	n.metrics.set()
	return nil
}

// Metrics implements Cache.
func (n *Nop) Metrics() MetricsSnapshot { return n.metrics.Snapshot() }

// Close implements Cache.
func (n *Nop) Close() error { return nil }
