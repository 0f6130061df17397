// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the OmicsOracle search
// pipeline: queries, analysis products, dataset and publication records,
// and the final search result envelope.
package types

// SearchType classifies a query and selects the backends dispatched for it.
type SearchType string

const (
	// TypeAuto lets the analyzer pick the search type.
	TypeAuto SearchType = "auto"

	// TypeIdentifier is a direct dataset-registry accession lookup (e.g. "GSE12345").
	TypeIdentifier SearchType = "identifier"

	// TypeDatasetText is a free-text search against the dataset registry.
	TypeDatasetText SearchType = "dataset_text"

	// TypePublication is a free-text search against bibliographic sources.
	TypePublication SearchType = "publication"

	// TypeHybrid searches both dataset and publication sources and
	// cross-links them via accessions mentioned in publication text.
	TypeHybrid SearchType = "hybrid"
)

// SearchFilters narrows dataset results. Zero values mean "no filter".
type SearchFilters struct {
	// Organism filters by taxon name (e.g. "Homo sapiens").
	Organism string `json:"organism,omitempty" yaml:"organism,omitempty"`

	// RecordType filters by registry entry type (e.g. "GSE", "GDS").
	RecordType string `json:"record_type,omitempty" yaml:"record_type,omitempty"`

	// MinSampleCount drops datasets with fewer samples. Negative values are invalid.
	MinSampleCount int `json:"min_sample_count,omitempty" yaml:"min_sample_count,omitempty"`
}

// IsZero reports whether no filter is set.
func (f SearchFilters) IsZero() bool {
	return f.Organism == "" && f.RecordType == "" && f.MinSampleCount == 0
}

// SearchQuery is the immutable input to one pipeline Search call.
type SearchQuery struct {
	// RawText is the query as the researcher typed it.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// Filters narrows dataset results.
	Filters SearchFilters `json:"filters,omitempty" yaml:"filters,omitempty"`

	// MaxResults caps each result list. Zero uses the configured default.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// RequestedType forces a search type; TypeAuto defers to the analyzer.
	RequestedType SearchType `json:"requested_type" yaml:"requested_type"`
}

// QueryAnalysis is the analyzer's classification of a raw query.
type QueryAnalysis struct {
	// Type is the resolved search type (never TypeAuto).
	Type SearchType `json:"type" yaml:"type"`

	// Confidence is in [0,1]; 1.0 for exact accession matches.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// EntityKind labels a group of extracted entities in an OptimizedQuery.
type EntityKind string

const (
	EntityGene      EntityKind = "gene"
	EntityDisease   EntityKind = "disease"
	EntityOrganism  EntityKind = "organism"
	EntityTechnique EntityKind = "technique"
)

// OptimizedQuery is the query-expansion product consumed read-only by the
// pipeline. Variations are alternate phrasings; the first is canonical.
type OptimizedQuery struct {
	ExpandedText string                  `json:"expanded_text" yaml:"expanded_text"`
	Entities     map[EntityKind][]string `json:"entities,omitempty" yaml:"entities,omitempty"`
	Variations   []string                `json:"variations,omitempty" yaml:"variations,omitempty"`
}
