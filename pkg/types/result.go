// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchResult is the envelope returned by every pipeline Search call. A
// result is always produced, possibly with zero records and populated
// Errors; only invalid input aborts a search.
type SearchResult struct {
	// SearchType is the resolved type the pipeline executed.
	SearchType SearchType `json:"search_type" yaml:"search_type"`

	// OptimizedQuery records the expansion used, when optimization ran.
	OptimizedQuery *OptimizedQuery `json:"optimized_query,omitempty" yaml:"optimized_query,omitempty"`

	// Datasets holds deduplicated dataset records in backend relevance order.
	Datasets []DatasetRecord `json:"datasets,omitempty" yaml:"datasets,omitempty"`

	// Publications holds deduplicated publications in ranked order.
	Publications []Publication `json:"publications,omitempty" yaml:"publications,omitempty"`

	// TotalResults is len(Datasets) + len(Publications).
	TotalResults int `json:"total_results" yaml:"total_results"`

	// CacheHit reports whether the result was served from cache.
	CacheHit bool `json:"cache_hit" yaml:"cache_hit"`

	// SearchTimeMS is the wall-clock duration of this call.
	SearchTimeMS int64 `json:"search_time_ms" yaml:"search_time_ms"`

	// Errors lists non-fatal backend, optimizer, and merge failures.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}
