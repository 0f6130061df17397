package pipeline

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

func sampleResult() *types.SearchResult {
	return &types.SearchResult{
		SearchType: types.TypeHybrid,
		Datasets: []types.DatasetRecord{
			{Accession: "GSE12345", Title: "Methylation atlas", Organism: "Homo sapiens", SampleCount: 24},
		},
		Publications: []types.Publication{
			{
				DOI: "10.1038/s41586-020-1", PMID: "111",
				Title:   "Breast cancer methylation landscape",
				Authors: []string{"Anne Smith", "Jones, Bo", "Wu"},
				Year:    2024, CitationCount: 41, Source: "europepmc",
			},
		},
		TotalResults: 2,
		SearchTimeMS: 310,
	}
}

func TestResultFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	q := types.SearchQuery{RawText: "breast cancer methylation", MaxResults: 20}
	result := sampleResult()

	if err := WriteResultFile(path, q, result); err != nil {
		t.Fatalf("WriteResultFile: %v", err)
	}

	rf, err := ReadResultFile(path)
	if err != nil {
		t.Fatalf("ReadResultFile: %v", err)
	}
	if rf.Query.RawText != q.RawText {
		t.Errorf("query = %+v", rf.Query)
	}
	if rf.Result.TotalResults != 2 || len(rf.Result.Publications) != 1 {
		t.Errorf("result = %+v", rf.Result)
	}
	if rf.Result.Publications[0].DOI != "10.1038/s41586-020-1" {
		t.Errorf("publication = %+v", rf.Result.Publications[0])
	}
	if rf.SavedAt.IsZero() {
		t.Error("saved_at not set")
	}
}

func TestFormatCSL(t *testing.T) {
	var buf strings.Builder
	if err := FormatCSL(sampleResult(), &buf); err != nil {
		t.Fatalf("FormatCSL: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"id: 10.1038/s41586-020-1",
		"type: article-journal",
		"family: Smith",
		"given: Anne",
		"literal: Wu",
		"PMID: \"111\"",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("CSL output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "- 2024") {
		t.Errorf("CSL output missing issued year:\n%s", out)
	}
}

func TestCSLCommaNameForm(t *testing.T) {
	item := toCSLItem(types.Publication{Title: "t", Authors: []string{"Jones, Bo"}})
	if item.Author[0].Family != "Jones" || item.Author[0].Given != "Bo" {
		t.Errorf("comma-form name parsed as %+v", item.Author[0])
	}
}

func TestFormatTable(t *testing.T) {
	var buf strings.Builder
	FormatTable(sampleResult(), &buf)
	out := buf.String()

	for _, want := range []string{"GSE12345", "Breast cancer methylation landscape",
		"Anne Smith et al.", "2 results in 310 ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf strings.Builder
	FormatTable(&types.SearchResult{Errors: []string{"geo: timeout"}}, &buf)
	out := buf.String()
	if !strings.Contains(out, "No results found.") || !strings.Contains(out, "geo: timeout") {
		t.Errorf("empty output = %q", out)
	}
}
