// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by backends that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "omicsoracle/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search orchestration stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the per-list result cap (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableGEO controls whether the GEO dataset backend is used.
	EnableGEO bool `json:"enable_geo" yaml:"enable_geo"`

	// EnableEuropePMC controls whether the Europe PMC publication backend is used.
	EnableEuropePMC bool `json:"enable_europepmc" yaml:"enable_europepmc"`

	// EnableSemanticScholar controls whether the Semantic Scholar
	// publication backend is used.
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`

	// NCBIAPIKey raises the E-utilities rate limit from 3 to 10 req/s.
	NCBIAPIKey string `json:"ncbi_api_key,omitempty" yaml:"ncbi_api_key,omitempty"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// BackendTimeout bounds each backend call within one search (default 15s).
	BackendTimeout time.Duration `json:"backend_timeout" yaml:"backend_timeout"`

	// OptimizerTimeout bounds the query-optimizer call (default 5s).
	OptimizerTimeout time.Duration `json:"optimizer_timeout" yaml:"optimizer_timeout"`

	// HybridFetchTimeout bounds the batch accession fetch during hybrid
	// merging (default 20s).
	HybridFetchTimeout time.Duration `json:"hybrid_fetch_timeout" yaml:"hybrid_fetch_timeout"`
}

// CacheBackendKind selects the cache implementation.
type CacheBackendKind string

const (
	CacheRedis  CacheBackendKind = "redis"
	CacheBadger CacheBackendKind = "badger"
	CacheNone   CacheBackendKind = "none"
)

// CacheConfig holds settings for the tiered result cache.
type CacheConfig struct {
	// Backend selects the cache implementation: redis, badger, or none.
	Backend CacheBackendKind `json:"backend" yaml:"backend"`

	// RedisAddr is the host:port of the Redis server.
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`

	// RedisPassword authenticates against Redis; empty for none.
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`

	// RedisDB selects the Redis logical database.
	RedisDB int `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`

	// Dir is the Badger database directory (default "cache/").
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// TTL tiers by data volatility. Identifier-direct lookups and stable
	// bibliographic metadata keep long TTLs; free-text searches expire
	// quickly because relevance and newly indexed records drift.
	IdentifierTTL  time.Duration `json:"identifier_ttl" yaml:"identifier_ttl"`
	PublicationTTL time.Duration `json:"publication_ttl" yaml:"publication_ttl"`
	FreeTextTTL    time.Duration `json:"free_text_ttl" yaml:"free_text_ttl"`
}

// RankWeights holds the publication scoring weights. They sum to 1.0 in the
// default configuration but are not required to.
type RankWeights struct {
	Title    float64 `json:"title" yaml:"title"`
	Abstract float64 `json:"abstract" yaml:"abstract"`
	Recency  float64 `json:"recency" yaml:"recency"`
	Citation float64 `json:"citation" yaml:"citation"`
}

// DefaultRankWeights returns the hand-tuned default scoring weights.
func DefaultRankWeights() RankWeights {
	return RankWeights{Title: 0.40, Abstract: 0.30, Recency: 0.20, Citation: 0.10}
}

// HistoryConfig holds settings for the search history log.
type HistoryConfig struct {
	// Dir is the directory holding the history SQLite database
	// (default "history/"). Empty disables the history log.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// PipelineConfig groups all stage configurations for the search pipeline.
type PipelineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Rank    RankWeights   `json:"rank" yaml:"rank"`
	History HistoryConfig `json:"history" yaml:"history"`
}
