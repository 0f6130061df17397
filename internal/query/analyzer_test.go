package query

import (
	"context"
	"testing"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

func TestAnalyzeIdentifier(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"series", "GSE12345"},
		{"lowercase", "gse12345"},
		{"dataset", "GDS181"},
		{"platform", "GPL570"},
		{"sample", "GSM1234567"},
		{"surrounding whitespace", "  GSE12345  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.raw)
			if a.Type != types.TypeIdentifier {
				t.Errorf("Analyze(%q).Type = %v, want identifier", tt.raw, a.Type)
			}
			if a.Confidence != 1.0 {
				t.Errorf("Analyze(%q).Confidence = %v, want 1.0", tt.raw, a.Confidence)
			}
		})
	}
}

func TestAnalyzeNotIdentifier(t *testing.T) {
	// Accession embedded in a longer query is not a direct lookup.
	a := Analyze("expression data like GSE12345")
	if a.Type == types.TypeIdentifier {
		t.Errorf("embedded accession should not classify as identifier, got %v", a.Type)
	}
}

func TestAnalyzePublicationSignals(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"pmid colon", "PMID:32015508"},
		{"pmid space", "PMID 32015508"},
		{"doi", "10.1038/s41586-020-2649-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.raw)
			if a.Type != types.TypePublication {
				t.Errorf("Analyze(%q).Type = %v, want publication", tt.raw, a.Type)
			}
			if a.Confidence != 0.9 {
				t.Errorf("Analyze(%q).Confidence = %v, want 0.9", tt.raw, a.Confidence)
			}
		})
	}
}

func TestAnalyzeCueWords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want types.SearchType
	}{
		{"dataset vocabulary", "microarray expression profiling datasets", types.TypeDatasetText},
		{"publication vocabulary", "review articles published on p53", types.TypePublication},
		{"no signal", "breast cancer methylation", types.TypeHybrid},
		{"empty", "", types.TypeHybrid},
		{"geo word boundary", "geography of disease spread", types.TypeHybrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.raw)
			if a.Type != tt.want {
				t.Errorf("Analyze(%q).Type = %v, want %v", tt.raw, a.Type, tt.want)
			}
			if a.Confidence < 0.5 || a.Confidence > 0.9 {
				if tt.want != types.TypeHybrid || a.Confidence != 0.6 {
					t.Errorf("Analyze(%q).Confidence = %v, out of range", tt.raw, a.Confidence)
				}
			}
		})
	}
}

func TestResolveHonorsRequestedType(t *testing.T) {
	q := types.SearchQuery{RawText: "GSE12345", RequestedType: types.TypePublication}
	a := Resolve(q)
	if a.Type != types.TypePublication || a.Confidence != 1.0 {
		t.Errorf("Resolve = %+v, want forced publication with confidence 1.0", a)
	}

	q.RequestedType = types.TypeAuto
	if a := Resolve(q); a.Type != types.TypeIdentifier {
		t.Errorf("Resolve with auto = %v, want identifier", a.Type)
	}
}

func TestFallbackAndNoop(t *testing.T) {
	oq, err := NoopOptimizer{}.Optimize(context.Background(), "tp53 lung cancer")
	if err != nil {
		t.Fatalf("noop optimizer returned error: %v", err)
	}
	if oq.ExpandedText != "tp53 lung cancer" {
		t.Errorf("ExpandedText = %q, want raw text", oq.ExpandedText)
	}
	if len(oq.Variations) != 1 || oq.Variations[0] != "tp53 lung cancer" {
		t.Errorf("Variations = %v, want the raw text as canonical variation", oq.Variations)
	}
}
