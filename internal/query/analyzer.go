// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query classifies raw query strings and defines the optimizer
// contract the pipeline consumes.
package query

import (
	"regexp"
	"strings"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// accessionPattern matches a GEO registry accession as the whole query:
// "GSE12345", "gds181", "GPL570", "GSM1234567".
var accessionPattern = regexp.MustCompile(`^(?i)(GSE|GDS|GPL|GSM)\d{1,9}$`)

// pmidPattern matches an explicit PubMed id: "PMID:12345678" or "PMID 12345678".
var pmidPattern = regexp.MustCompile(`^(?i)PMID[:\s]?\s*\d{1,9}$`)

// doiPattern matches a bare DOI: "10.1038/s41586-020-2649-2".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

// Cue-word vocabularies for heuristic routing. Dataset cues come from the
// registry's own terminology; publication cues from bibliographic phrasing.
var (
	datasetCues = []string{
		"dataset", "datasets", "geo", "series", "samples", "platform",
		"microarray", "expression profiling", "accession", "raw data",
		"superseries",
	}
	publicationCues = []string{
		"paper", "papers", "publication", "publications", "article",
		"articles", "journal", "author", "authors", "published", "review",
		"cited", "doi",
	}
)

// Analyze classifies a raw query string. It never fails: input without a
// strong signal degrades to TypeHybrid, which favors recall because dataset
// records are often under-described and publications mentioning them supply
// the missing accessions.
func Analyze(raw string) types.QueryAnalysis {
	trimmed := strings.TrimSpace(raw)

	if accessionPattern.MatchString(trimmed) {
		return types.QueryAnalysis{Type: types.TypeIdentifier, Confidence: 1.0}
	}

	if pmidPattern.MatchString(trimmed) || doiPattern.MatchString(trimmed) {
		return types.QueryAnalysis{Type: types.TypePublication, Confidence: 0.9}
	}

	lower := strings.ToLower(trimmed)
	datasetScore := cueScore(lower, datasetCues)
	pubScore := cueScore(lower, publicationCues)

	switch {
	case datasetScore > pubScore && datasetScore > 0:
		return types.QueryAnalysis{Type: types.TypeDatasetText, Confidence: cueConfidence(datasetScore)}
	case pubScore > datasetScore && pubScore > 0:
		return types.QueryAnalysis{Type: types.TypePublication, Confidence: cueConfidence(pubScore)}
	default:
		return types.QueryAnalysis{Type: types.TypeHybrid, Confidence: 0.6}
	}
}

// Resolve returns the analysis for a query, honoring an explicit
// RequestedType with full confidence. TypeAuto defers to Analyze.
func Resolve(q types.SearchQuery) types.QueryAnalysis {
	if q.RequestedType != "" && q.RequestedType != types.TypeAuto {
		return types.QueryAnalysis{Type: q.RequestedType, Confidence: 1.0}
	}
	return Analyze(q.RawText)
}

// cueScore counts cue phrases present in the lowercased query.
func cueScore(lower string, cues []string) int {
	score := 0
	for _, cue := range cues {
		if containsWord(lower, cue) {
			score++
		}
	}
	return score
}

// containsWord reports whether phrase occurs in text on word boundaries, so
// "geo" does not fire inside "geography".
func containsWord(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// cueConfidence maps a cue count to a confidence in [0.5, 0.9].
func cueConfidence(score int) float64 {
	c := 0.5 + 0.1*float64(score)
	if c > 0.9 {
		c = 0.9
	}
	return c
}
