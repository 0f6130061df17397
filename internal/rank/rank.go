// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores and orders deduplicated publications against the
// user's query. The composite score blends textual relevance with recency
// and citation impact so that a heavily cited but stale paper does not
// drown out a fresh, directly relevant one.
package rank

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// Ranker scores publications with a fixed weight vector. The zero value is
// not usable; construct with New.
type Ranker struct {
	weights types.RankWeights
	now     func() time.Time
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithNow overrides the clock used for recency scoring. Tests pin it.
func WithNow(now func() time.Time) Option {
	return func(r *Ranker) { r.now = now }
}

// New returns a Ranker with the given weights. Zero-value weights fall back
// to the defaults.
func New(weights types.RankWeights, opts ...Option) *Ranker {
	if weights == (types.RankWeights{}) {
		weights = types.DefaultRankWeights()
	}
	r := &Ranker{weights: weights, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every publication against the query text and returns them
// ordered best first. Ties break by citation count descending, then by
// primary identifier ascending, so equal inputs always produce the same
// ordering.
func (r *Ranker) Rank(query string, pubs []types.Publication) []types.RankedPublication {
	if len(pubs) == 0 {
		return nil
	}

	queryTokens := tokenize(query)

	ranked := make([]types.RankedPublication, len(pubs))
	for i, p := range pubs {
		ranked[i] = types.RankedPublication{
			Publication: p,
			Score:       r.Score(queryTokens, p),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].CitationCount != ranked[j].CitationCount {
			return ranked[i].CitationCount > ranked[j].CitationCount
		}
		return ranked[i].PrimaryID() < ranked[j].PrimaryID()
	})
	return ranked
}

// Score computes the weighted composite for one publication. Exposed so the
// pipeline can report per-result component scores if asked.
func (r *Ranker) Score(queryTokens map[string]bool, p types.Publication) float64 {
	title := overlapFraction(queryTokens, tokenize(p.Title))
	abstract := overlapFraction(queryTokens, tokenize(p.Abstract))
	recency := RecencyScore(p.Year, r.now())
	citation := CitationScore(p.CitationCount)

	return r.weights.Title*title +
		r.weights.Abstract*abstract +
		r.weights.Recency*recency +
		r.weights.Citation*citation
}

// RecencyScore maps a publication year onto [0.1, 1.3] relative to now.
// Papers at most two years old earn a linear freshness bonus up to 1.3;
// older papers decay exponentially with a five-year half-life constant,
// floored at 0.1 so old landmark papers never vanish. An unknown year gets
// a neutral 0.3.
func RecencyScore(year int, now time.Time) float64 {
	if year <= 0 {
		return 0.3
	}
	age := float64(now.Year() - year)
	if age < 0 {
		age = 0
	}
	if age <= 2 {
		return 1.0 + 0.3*(2-age)/2
	}
	score := math.Exp(-age / 5)
	if score < 0.1 {
		return 0.1
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

// CitationScore maps a citation count onto [0, 1] with diminishing returns.
// The curve is linear to 100 citations, square-root to 1000, then
// logarithmic, so each extra citation matters less the more a paper has.
func CitationScore(count int) float64 {
	c := float64(count)
	switch {
	case count <= 0:
		return 0
	case count <= 100:
		return 0.60 * c / 100
	case count <= 1000:
		return 0.60 + 0.20*math.Sqrt((c-100)/900)
	default:
		frac := (math.Log10(c) - 3) / 2
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		return 0.80 + 0.20*frac
	}
}

// overlapFraction returns the fraction of query tokens present in the
// field's token set, 0 when either side is empty.
func overlapFraction(query, field map[string]bool) float64 {
	if len(query) == 0 || len(field) == 0 {
		return 0
	}
	matched := 0
	for tok := range query {
		if field[tok] {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}

// tokenize lowercases, strips punctuation, and returns the token set.
func tokenize(text string) map[string]bool {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(b.String()) {
		tokens[tok] = true
	}
	return tokens
}
