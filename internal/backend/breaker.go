// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// breakerSettings returns the shared circuit breaker configuration. A
// backend trips after five consecutive failures and probes again after 30
// seconds, so a dead upstream costs one fast error instead of a timeout per
// search.
func breakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

// BreakerDataset wraps a DatasetBackend with a circuit breaker.
type BreakerDataset struct {
	inner   DatasetBackend
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerDataset wraps backend with a fresh breaker keyed by its name.
func NewBreakerDataset(inner DatasetBackend) *BreakerDataset {
	return &BreakerDataset{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(breakerSettings(inner.Name())),
	}
}

// Name returns the wrapped backend's identifier.
func (b *BreakerDataset) Name() string { return b.inner.Name() }

// Search implements DatasetBackend.
func (b *BreakerDataset) Search(ctx context.Context, query string, filters types.SearchFilters, maxResults int) ([]types.DatasetRecord, error) {
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.Search(ctx, query, filters, maxResults)
	})
	if err != nil {
		return nil, err
	}
	return out.([]types.DatasetRecord), nil
}

// Fetch implements DatasetBackend.
func (b *BreakerDataset) Fetch(ctx context.Context, accession string) (types.DatasetRecord, error) {
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.Fetch(ctx, accession)
	})
	if err != nil {
		return types.DatasetRecord{}, err
	}
	return out.(types.DatasetRecord), nil
}

// BreakerPublication wraps a PublicationBackend with a circuit breaker.
type BreakerPublication struct {
	inner   PublicationBackend
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerPublication wraps backend with a fresh breaker keyed by its name.
func NewBreakerPublication(inner PublicationBackend) *BreakerPublication {
	return &BreakerPublication{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(breakerSettings(inner.Name())),
	}
}

// Name returns the wrapped backend's identifier.
func (b *BreakerPublication) Name() string { return b.inner.Name() }

// Search implements PublicationBackend.
func (b *BreakerPublication) Search(ctx context.Context, query string, maxResults int) ([]types.Publication, error) {
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.Search(ctx, query, maxResults)
	})
	if err != nil {
		return nil, err
	}
	return out.([]types.Publication), nil
}
