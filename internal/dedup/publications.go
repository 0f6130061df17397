// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// Fuzzy-match thresholds. Two publications without a shared identifier are
// the same entity when all three hold.
const (
	// TitleSimilarityThreshold is the minimum normalized title similarity.
	TitleSimilarityThreshold = 0.85

	// AuthorOverlapThreshold is the minimum author-set overlap.
	AuthorOverlapThreshold = 0.80

	// MaxYearDelta is the maximum publication-year difference, covering
	// preprint-vs-journal and online-ahead-of-print skew.
	MaxYearDelta = 1
)

// Publications removes duplicate publications in two passes: exact
// identifier partitioning (any shared doi/pmid/pmcid, transitively), then
// pairwise fuzzy matching over the remainder. Each duplicate group keeps its most complete
// member; referenced dataset ids from dropped members are folded into the
// survivor so hybrid merging loses nothing.
func Publications(pubs []types.Publication) ([]types.Publication, int) {
	if len(pubs) == 0 {
		return nil, 0
	}

	groups := groupByIdentifier(pubs)
	groups = mergeFuzzy(groups, pubs)

	deduped := make([]types.Publication, 0, len(groups))
	removed := 0
	for _, g := range groups {
		deduped = append(deduped, representative(g, pubs))
		removed += len(g) - 1
	}
	return deduped, removed
}

// SameEntity reports whether two publications describe the same article:
// any shared non-empty identifier, or title similarity, author overlap, and
// year delta all within thresholds. Pure predicate so the heuristic can be
// tuned without touching orchestration code.
func SameEntity(a, b types.Publication) bool {
	if a.DOI != "" && a.DOI == b.DOI {
		return true
	}
	if a.PMID != "" && a.PMID == b.PMID {
		return true
	}
	if a.PMCID != "" && a.PMCID == b.PMCID {
		return true
	}

	if TitleSimilarity(a.Title, b.Title) < TitleSimilarityThreshold {
		return false
	}
	if AuthorOverlap(a.Authors, b.Authors) < AuthorOverlapThreshold {
		return false
	}
	// Unknown years pass: title plus authors already agree strongly.
	if a.Year > 0 && b.Year > 0 {
		delta := a.Year - b.Year
		if delta < 0 {
			delta = -delta
		}
		if delta > MaxYearDelta {
			return false
		}
	}
	return true
}

// groupByIdentifier partitions publication indexes by shared doi/pmid/pmcid.
// Sharing is transitive: a record carrying identifiers from two existing
// groups proves those groups are one entity, so grouping is a union-find
// over publication indexes keyed by identifier.
func groupByIdentifier(pubs []types.Publication) [][]int {
	parent := make([]int, len(pubs))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	// Union toward the smaller root so the earliest occurrence anchors the
	// group, keeping output order deterministic.
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if rb < ra {
			ra, rb = rb, ra
		}
		parent[rb] = ra
	}

	byID := make(map[string]int) // identifier → first publication index
	for i, p := range pubs {
		for _, id := range identifierKeys(p) {
			if j, ok := byID[id]; ok {
				union(j, i)
			} else {
				byID[id] = i
			}
		}
	}

	groupIdx := make(map[int]int) // root → group index
	var groups [][]int
	for i := range pubs {
		root := find(i)
		g, ok := groupIdx[root]
		if !ok {
			g = len(groups)
			groups = append(groups, nil)
			groupIdx[root] = g
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

func identifierKeys(p types.Publication) []string {
	var ids []string
	if p.DOI != "" {
		ids = append(ids, "doi:"+strings.ToLower(p.DOI))
	}
	if p.PMID != "" {
		ids = append(ids, "pmid:"+p.PMID)
	}
	if p.PMCID != "" {
		ids = append(ids, "pmcid:"+strings.ToUpper(p.PMCID))
	}
	return ids
}

// mergeFuzzy joins singleton groups whose members fuzzy-match. Pairwise
// over the ungrouped remainder only, so the quadratic scan stays small.
func mergeFuzzy(groups [][]int, pubs []types.Publication) [][]int {
	for i := 0; i < len(groups); i++ {
		if len(groups[i]) != 1 {
			continue
		}
		for j := i + 1; j < len(groups); j++ {
			if len(groups[j]) != 1 {
				continue
			}
			if SameEntity(pubs[groups[i][0]], pubs[groups[j][0]]) {
				groups[i] = append(groups[i], groups[j]...)
				groups = append(groups[:j], groups[j+1:]...)
				j--
			}
		}
	}
	return groups
}

// representative picks the group member with the highest completeness
// score, then unions the referenced dataset ids of the rest into it. Ties
// keep the earliest occurrence for determinism.
func representative(group []int, pubs []types.Publication) types.Publication {
	best := group[0]
	for _, idx := range group[1:] {
		if CompletenessScore(pubs[idx]) > CompletenessScore(pubs[best]) {
			best = idx
		}
	}

	rep := pubs[best]
	if len(group) > 1 {
		rep.ReferencedDatasetIDs = unionDatasetIDs(group, pubs)
	}
	return rep
}

// CompletenessScore counts populated significant fields (0–7): abstract,
// year, citations, doi, pmid, pmcid, authors.
func CompletenessScore(p types.Publication) int {
	score := 0
	if p.Abstract != "" {
		score++
	}
	if p.Year > 0 {
		score++
	}
	if p.CitationCount > 0 {
		score++
	}
	if p.DOI != "" {
		score++
	}
	if p.PMID != "" {
		score++
	}
	if p.PMCID != "" {
		score++
	}
	if len(p.Authors) > 0 {
		score++
	}
	return score
}

func unionDatasetIDs(group []int, pubs []types.Publication) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, idx := range group {
		for _, id := range pubs[idx].ReferencedDatasetIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// TitleSimilarity returns the Dice coefficient of the normalized token sets
// of two titles: 1.0 for identical normalized titles, 0 for disjoint ones.
func TitleSimilarity(a, b string) float64 {
	ta := titleTokens(a)
	tb := titleTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	common := 0
	for tok := range ta {
		if tb[tok] {
			common++
		}
	}
	return 2 * float64(common) / float64(len(ta)+len(tb))
}

// AuthorOverlap returns |intersection| / min(|a|, |b|) over normalized
// author surnames. The min denominator tolerates one source truncating the
// author list ("et al.") while the other carries it in full.
func AuthorOverlap(a, b []string) float64 {
	sa := surnameSet(a)
	sb := surnameSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	common := 0
	for name := range sa {
		if sb[name] {
			common++
		}
	}
	minLen := len(sa)
	if len(sb) < minLen {
		minLen = len(sb)
	}
	return float64(common) / float64(minLen)
}

// titleTokens lowercases and strips punctuation, returning the token set.
func titleTokens(title string) map[string]bool {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(b.String()) {
		tokens[tok] = true
	}
	return tokens
}

// surnameSet extracts the lowercased surname of each author name, which
// survives the "A. Smith" vs "Smith, Anne" vs "Anne Smith" format spread.
func surnameSet(authors []string) map[string]bool {
	set := make(map[string]bool, len(authors))
	for _, raw := range authors {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		var surname string
		if i := strings.IndexByte(raw, ','); i >= 0 {
			// "Smith, A." puts the surname first.
			surname = strings.TrimSpace(strings.ToLower(raw[:i]))
		} else if fields := strings.Fields(strings.ToLower(raw)); len(fields) > 0 {
			surname = fields[len(fields)-1]
		}
		if surname != "" {
			set[surname] = true
		}
	}
	return set
}
