// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hybrid links the publication and dataset halves of a search.
// Publications frequently cite the accession of the dataset they analyzed;
// scanning for those accessions and fetching the records they name turns
// two parallel result lists into one connected answer.
package hybrid

import (
	"context"
	"regexp"
	"sort"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// accessionPattern matches GEO accessions embedded in prose. Word
// boundaries keep identifiers inside longer tokens (like supplementary file
// names) from matching.
var accessionPattern = regexp.MustCompile(`\b(?:GSE|GDS|GPL|GSM)\d{1,9}\b`)

// Fetcher retrieves a single dataset record by accession. The GEO backend
// satisfies this.
type Fetcher interface {
	Fetch(ctx context.Context, accession string) (types.DatasetRecord, error)
}

// ExtractDatasetIDs scans each publication's title and abstract for dataset
// accessions, records them on the publication, and returns the sorted union
// across all publications. The input slice is annotated in place.
func ExtractDatasetIDs(pubs []types.Publication) []string {
	seen := make(map[string]bool)
	var all []string

	for i := range pubs {
		ids := scan(pubs[i].Title, pubs[i].Abstract)
		if len(ids) == 0 {
			continue
		}
		pubs[i].ReferencedDatasetIDs = ids
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				all = append(all, id)
			}
		}
	}
	sort.Strings(all)
	return all
}

// FetchAndMerge resolves referenced accessions that the dataset list does
// not already contain and appends their records. Individual fetch failures
// are reported and skipped; one dead accession must not sink the rest.
func FetchAndMerge(ctx context.Context, fetcher Fetcher, datasets []types.DatasetRecord, ids []string) ([]types.DatasetRecord, []string) {
	if fetcher == nil || len(ids) == 0 {
		return datasets, nil
	}

	present := make(map[string]bool, len(datasets))
	for _, d := range datasets {
		present[d.Accession] = true
	}

	var errs []string
	for _, id := range ids {
		if present[id] {
			continue
		}
		record, err := fetcher.Fetch(ctx, id)
		if err != nil {
			errs = append(errs, "hybrid fetch "+id+": "+err.Error())
			continue
		}
		present[id] = true
		datasets = append(datasets, record)
	}
	return datasets, errs
}

// scan returns the sorted unique accessions found across the given texts.
func scan(texts ...string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, text := range texts {
		for _, id := range accessionPattern.FindAllString(text, -1) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}
