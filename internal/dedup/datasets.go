// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup removes duplicate records from merged multi-backend result
// sets. Dataset records dedup by accession alone; publications need exact
// identifier grouping plus a fuzzy fallback because no single identifier is
// universal across bibliographic sources.
package dedup

import "github.com/sdodlapa/OmicsOracle-sub017/pkg/types"

// Datasets removes records sharing an accession in one O(n) pass. The first
// occurrence wins; later duplicates are dropped and counted. No similarity
// heuristics apply because accessions are authoritative unique identifiers.
func Datasets(records []types.DatasetRecord) ([]types.DatasetRecord, int) {
	if len(records) == 0 {
		return nil, 0
	}

	seen := make(map[string]bool, len(records))
	deduped := make([]types.DatasetRecord, 0, len(records))
	removed := 0

	for _, r := range records {
		if seen[r.Accession] {
			removed++
			continue
		}
		seen[r.Accession] = true
		deduped = append(deduped, r)
	}
	return deduped, removed
}
