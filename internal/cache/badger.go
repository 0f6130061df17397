// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// Badger is an embedded Cache backed by BadgerDB, for deployments without a
// Redis server. Badger handles TTL expiry natively via entry ExpiresAt.
type Badger struct {
	db      *badger.DB
	metrics Metrics
}

// NewBadger opens (or creates) a Badger database at dir.
func NewBadger(dir string) (*Badger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger cache at %s: %w", dir, err)
	}
	return &Badger{db: db}, nil
}

// NewBadgerInMemory opens an in-memory Badger database. Tests use this to
// exercise the real TTL machinery without touching disk.
func NewBadgerInMemory() (*Badger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory badger cache: %w", err)
	}
	return &Badger{db: db}, nil
}

// Get implements Cache.
func (b *Badger) Get(_ context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		b.metrics.miss()
		return nil, false, nil
	}
	if err != nil {
		b.metrics.errored()
		return nil, false, fmt.Errorf("badger get: %w", err)
	}
	b.metrics.hit()
	return payload, true, nil
}

// Set implements Cache.
func (b *Badger) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), payload)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		b.metrics.errored()
		return fmt.Errorf("badger set: %w", err)
	}
	b.metrics.set()
	return nil
}

// Metrics implements Cache.
func (b *Badger) Metrics() MetricsSnapshot { return b.metrics.Snapshot() }

// Close implements Cache.
func (b *Badger) Close() error { return b.db.Close() }
