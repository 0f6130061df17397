// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backend implements the external data source clients: the NCBI GEO
// dataset registry and the Europe PMC and Semantic Scholar bibliographic
// APIs. Backends translate their source's wire format into the shared
// record types; merging, dedup, and ranking happen downstream.
package backend

import (
	"context"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// DatasetBackend is a source of dataset registry records.
type DatasetBackend interface {
	// Name returns the backend identifier used in logs and error reports.
	Name() string

	// Search runs a free-text search and returns matching dataset records.
	Search(ctx context.Context, query string, filters types.SearchFilters, maxResults int) ([]types.DatasetRecord, error)

	// Fetch retrieves a single record by accession.
	Fetch(ctx context.Context, accession string) (types.DatasetRecord, error)
}

// PublicationBackend is a source of bibliographic records.
type PublicationBackend interface {
	// Name returns the backend identifier used in logs and error reports.
	Name() string

	// Search runs a free-text search and returns matching publications.
	Search(ctx context.Context, query string, maxResults int) ([]types.Publication, error)
}
