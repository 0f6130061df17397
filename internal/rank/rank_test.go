package rank

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

var fixedNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func pinnedRanker() *Ranker {
	return New(types.DefaultRankWeights(), WithNow(func() time.Time { return fixedNow }))
}

func TestCitationScoreMonotonic(t *testing.T) {
	counts := []int{0, 1, 50, 100, 101, 500, 1000, 1001, 10000, 99999}
	prev := -1.0
	for _, c := range counts {
		got := CitationScore(c)
		if got < prev {
			t.Errorf("CitationScore(%d) = %v, below score for smaller count %v", c, got, prev)
		}
		prev = got
	}
}

func TestCitationScoreBounds(t *testing.T) {
	if got := CitationScore(0); got != 0 {
		t.Errorf("CitationScore(0) = %v, want 0", got)
	}
	if got := CitationScore(100); math.Abs(got-0.60) > 1e-9 {
		t.Errorf("CitationScore(100) = %v, want 0.60", got)
	}
	if got := CitationScore(1000); math.Abs(got-0.80) > 1e-9 {
		t.Errorf("CitationScore(1000) = %v, want 0.80", got)
	}
	if got := CitationScore(99999); got >= 1.0 {
		t.Errorf("CitationScore(99999) = %v, want < 1.0", got)
	}
	if got := CitationScore(10_000_000); got > 1.0 {
		t.Errorf("CitationScore(10M) = %v, want <= 1.0", got)
	}
}

func TestRecencyScore(t *testing.T) {
	tests := []struct {
		name string
		year int
		want float64
	}{
		{"current year", 2026, 1.3},
		{"one year old", 2025, 1.15},
		{"two years old", 2024, 1.0},
		{"five years old", 2021, math.Exp(-1.0)},
		{"ancient floors at 0.1", 1950, 0.1},
		{"unknown year", 0, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecencyScore(tt.year, fixedNow)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RecencyScore(%d) = %v, want %v", tt.year, got, tt.want)
			}
		})
	}
}

func TestRecencyScoreFutureYearClamped(t *testing.T) {
	// Ahead-of-print records sometimes carry next year's date.
	if got := RecencyScore(2027, fixedNow); got != 1.3 {
		t.Errorf("RecencyScore(future) = %v, want 1.3", got)
	}
}

func TestRankOrdersByRelevance(t *testing.T) {
	r := pinnedRanker()

	pubs := []types.Publication{
		{DOI: "10.1/off-topic", Title: "Soil microbiome diversity", Year: 2025, CitationCount: 500},
		{DOI: "10.1/on-topic", Title: "Breast cancer methylation profiling",
			Abstract: "DNA methylation in breast cancer cohorts", Year: 2024, CitationCount: 30},
	}

	ranked := r.Rank("breast cancer methylation", pubs)
	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2", len(ranked))
	}
	if ranked[0].DOI != "10.1/on-topic" {
		t.Errorf("top result = %q, want the textually relevant paper", ranked[0].DOI)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("scores not descending: %v then %v", ranked[0].Score, ranked[1].Score)
	}
}

func TestRankTieBreaks(t *testing.T) {
	r := pinnedRanker()

	// Identical text and year: scores differ only through citations.
	pubs := []types.Publication{
		{DOI: "10.1/b", Title: "same title", Year: 2024, CitationCount: 10},
		{DOI: "10.1/a", Title: "same title", Year: 2024, CitationCount: 10},
		{DOI: "10.1/c", Title: "same title", Year: 2024, CitationCount: 50},
	}

	ranked := r.Rank("same title", pubs)
	if ranked[0].DOI != "10.1/c" {
		t.Errorf("higher citations must win the tie, got %q first", ranked[0].DOI)
	}
	if ranked[1].DOI != "10.1/a" || ranked[2].DOI != "10.1/b" {
		t.Errorf("exact ties must order by primary id, got %q then %q",
			ranked[1].DOI, ranked[2].DOI)
	}
}

func TestRankDeterministic(t *testing.T) {
	r := pinnedRanker()
	pubs := []types.Publication{
		{PMID: "3", Title: "gene expression atlas", Year: 2023, CitationCount: 12},
		{PMID: "1", Title: "expression profiling of genes", Year: 2025, CitationCount: 3},
		{PMID: "2", Title: "unrelated topic entirely", Year: 2020, CitationCount: 900},
	}

	first := r.Rank("gene expression", pubs)
	second := r.Rank("gene expression", pubs)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical orderings")
	}
}

func TestRankEmpty(t *testing.T) {
	if got := pinnedRanker().Rank("anything", nil); got != nil {
		t.Errorf("Rank(nil) = %v, want nil", got)
	}
}

func TestScoreMissingFields(t *testing.T) {
	r := pinnedRanker()
	q := tokenize("breast cancer")

	bare := types.Publication{Title: "breast cancer"}
	score := r.Score(q, bare)
	// Title 0.40*1.0, abstract 0, recency 0.20*0.3, citation 0.
	want := 0.40 + 0.20*0.3
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", score, want)
	}
}

func TestZeroWeightsFallBackToDefaults(t *testing.T) {
	r := New(types.RankWeights{}, WithNow(func() time.Time { return fixedNow }))
	if r.weights != types.DefaultRankWeights() {
		t.Errorf("weights = %+v, want defaults", r.weights)
	}
}
