package hybrid

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

func TestExtractDatasetIDs(t *testing.T) {
	pubs := []types.Publication{
		{
			Title:    "Methylation profiling (GSE99999)",
			Abstract: "Data deposited under GSE99999 and GSE12345 on platform GPL570.",
		},
		{Abstract: "No accessions here, GSEX123 is not one either."},
		{Abstract: "Reuses GSE12345."},
	}

	ids := ExtractDatasetIDs(pubs)
	want := []string{"GPL570", "GSE12345", "GSE99999"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}

	if !reflect.DeepEqual(pubs[0].ReferencedDatasetIDs, []string{"GPL570", "GSE12345", "GSE99999"}) {
		t.Errorf("pub 0 annotations = %v", pubs[0].ReferencedDatasetIDs)
	}
	if pubs[1].ReferencedDatasetIDs != nil {
		t.Errorf("pub 1 annotations = %v, want none", pubs[1].ReferencedDatasetIDs)
	}
	if !reflect.DeepEqual(pubs[2].ReferencedDatasetIDs, []string{"GSE12345"}) {
		t.Errorf("pub 2 annotations = %v", pubs[2].ReferencedDatasetIDs)
	}
}

func TestExtractDatasetIDsWordBoundary(t *testing.T) {
	pubs := []types.Publication{
		{Abstract: "See file GSE12345_counts.txt and token xGSE999."},
	}
	ids := ExtractDatasetIDs(pubs)
	// The underscore is a word character, so the filename token must not match.
	if len(ids) != 0 {
		t.Errorf("ids = %v, want none", ids)
	}
}

type mapFetcher struct {
	records map[string]types.DatasetRecord
	calls   []string
}

func (f *mapFetcher) Fetch(_ context.Context, accession string) (types.DatasetRecord, error) {
	f.calls = append(f.calls, accession)
	r, ok := f.records[accession]
	if !ok {
		return types.DatasetRecord{}, errors.New("not found")
	}
	return r, nil
}

func TestFetchAndMerge(t *testing.T) {
	fetcher := &mapFetcher{records: map[string]types.DatasetRecord{
		"GSE99999": {Accession: "GSE99999", Title: "Fetched"},
	}}
	existing := []types.DatasetRecord{{Accession: "GSE12345", Title: "Already present"}}

	merged, errs := FetchAndMerge(context.Background(), fetcher, existing,
		[]string{"GSE12345", "GSE99999", "GSE404"})

	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}
	if merged[1].Accession != "GSE99999" {
		t.Errorf("appended %q, want GSE99999", merged[1].Accession)
	}
	// Present accessions are not re-fetched.
	if !reflect.DeepEqual(fetcher.calls, []string{"GSE99999", "GSE404"}) {
		t.Errorf("fetch calls = %v", fetcher.calls)
	}
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one", errs)
	}
}

func TestFetchAndMergeNilFetcher(t *testing.T) {
	existing := []types.DatasetRecord{{Accession: "GSE1"}}
	merged, errs := FetchAndMerge(context.Background(), nil, existing, []string{"GSE2"})
	if len(merged) != 1 || errs != nil {
		t.Errorf("nil fetcher must be a no-op: %v, %v", merged, errs)
	}
}
