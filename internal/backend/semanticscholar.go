// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sdodlapa/OmicsOracle-sub017/internal/httputil"
	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,externalIds,year,citationCount"

// SemanticScholarBackend queries the Semantic Scholar Graph API. It is the
// citation-count authority among the publication sources.
type SemanticScholarBackend struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Name returns the backend identifier.
func (b *SemanticScholarBackend) Name() string { return "semantic_scholar" }

// Search queries the Semantic Scholar API and returns publications.
func (b *SemanticScholarBackend) Search(ctx context.Context, query string, maxResults int) ([]types.Publication, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}
	if maxResults <= 0 {
		maxResults = 20
	}

	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(maxResults)},
		"fields": {semanticFields},
	}
	reqURL := semanticAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.UserAgent)
	if b.APIKey != "" {
		req.Header.Set("x-api-key", b.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	var pubs []types.Publication
	for _, paper := range sr.Data {
		p := types.Publication{
			DOI:           paper.ExternalIDs.DOI,
			Title:         paper.Title,
			Abstract:      paper.Abstract,
			Year:          paper.Year,
			CitationCount: paper.CitationCount,
			Source:        "semantic_scholar",
		}
		if paper.ExternalIDs.PubMed != "" {
			p.PMID = paper.ExternalIDs.PubMed
		}
		if paper.ExternalIDs.PubMedCentral != "" {
			p.PMCID = "PMC" + strings.TrimPrefix(paper.ExternalIDs.PubMedCentral, "PMC")
		}
		for _, a := range paper.Authors {
			p.Authors = append(p.Authors, a.Name)
		}
		pubs = append(pubs, p)
	}
	return pubs, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID       string              `json:"paperId"`
	Title         string              `json:"title"`
	Abstract      string              `json:"abstract"`
	Year          int                 `json:"year"`
	CitationCount int                 `json:"citationCount"`
	Authors       []semanticAuthor    `json:"authors"`
	ExternalIDs   semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI           string `json:"DOI"`
	PubMed        string `json:"PubMed"`
	PubMedCentral string `json:"PubMedCentral"`
}
