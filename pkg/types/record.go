// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DatasetRecord is one dataset-registry entry. The accession is the
// authoritative unique identifier: two records with the same accession are
// the same entity regardless of which search path produced them. Records
// are immutable after creation.
type DatasetRecord struct {
	// Accession is the registry key (e.g. "GSE12345").
	Accession string `json:"accession" yaml:"accession"`

	// Title is the dataset title as returned by the registry.
	Title string `json:"title" yaml:"title"`

	// Summary is the free-text dataset description.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Organism is the taxon studied (e.g. "Homo sapiens").
	Organism string `json:"organism,omitempty" yaml:"organism,omitempty"`

	// Platform is the measurement platform accession (e.g. "GPL570").
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`

	// SampleCount is the number of samples in the series; zero if unknown.
	SampleCount int `json:"sample_count,omitempty" yaml:"sample_count,omitempty"`

	// PublishedAt is the registry release date; zero if unknown.
	PublishedAt time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`
}

// Publication is one bibliographic record. At least one of DOI, PMID, PMCID
// is populated by every backend.
type Publication struct {
	DOI   string `json:"doi,omitempty" yaml:"doi,omitempty"`
	PMID  string `json:"pmid,omitempty" yaml:"pmid,omitempty"`
	PMCID string `json:"pmcid,omitempty" yaml:"pmcid,omitempty"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the article abstract, when the source supplies one.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Authors lists author names in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the publication year; zero if unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// CitationCount is the source-reported citation count (never negative).
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// Source identifies which backend found this record
	// (e.g. "europepmc", "semantic_scholar").
	Source string `json:"source" yaml:"source"`

	// ReferencedDatasetIDs holds registry accessions found by scanning the
	// title and abstract. Populated during hybrid merging.
	ReferencedDatasetIDs []string `json:"referenced_dataset_ids,omitempty" yaml:"referenced_dataset_ids,omitempty"`
}

// PrimaryID returns the first populated identifier in DOI, PMID, PMCID
// order. Used as the deterministic ranking tie-break key.
func (p Publication) PrimaryID() string {
	switch {
	case p.DOI != "":
		return p.DOI
	case p.PMID != "":
		return p.PMID
	default:
		return p.PMCID
	}
}

// RankedPublication pairs a Publication with its ranking score. Scores are
// only meaningful for ordering within one result list.
type RankedPublication struct {
	Publication `json:"publication" yaml:"publication"`

	Score float64 `json:"score" yaml:"score"`
}
