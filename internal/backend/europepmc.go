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

// europePMCSearchBase is the Europe PMC REST search endpoint. Declared as a
// var so tests can substitute an httptest server.
var europePMCSearchBase = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

// EuropePMCBackend queries the Europe PMC REST API. Europe PMC aggregates
// PubMed, PMC, and preprint servers, so a single call covers most of the
// biomedical literature.
type EuropePMCBackend struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the backend identifier.
func (b *EuropePMCBackend) Name() string { return "europepmc" }

// Search queries Europe PMC. resultType=core returns abstracts and
// identifiers in one round trip.
func (b *EuropePMCBackend) Search(ctx context.Context, query string, maxResults int) ([]types.Publication, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Europe PMC query")
	}
	if maxResults <= 0 {
		maxResults = 20
	}

	params := url.Values{
		"query":      {query},
		"format":     {"json"},
		"resultType": {"core"},
		"pageSize":   {strconv.Itoa(maxResults)},
	}
	reqURL := europePMCSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Europe PMC API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Europe PMC API returned HTTP %d", resp.StatusCode)
	}

	var er europePMCResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing Europe PMC response: %w", err)
	}

	var pubs []types.Publication
	for _, result := range er.ResultList.Result {
		p := types.Publication{
			DOI:           result.DOI,
			PMID:          result.PMID,
			PMCID:         result.PMCID,
			Title:         result.Title,
			Abstract:      result.AbstractText,
			CitationCount: result.CitedByCount,
			Source:        "europepmc",
		}
		if result.PubYear != "" {
			if y, convErr := strconv.Atoi(result.PubYear); convErr == nil {
				p.Year = y
			}
		}
		if result.AuthorString != "" {
			p.Authors = splitAuthorString(result.AuthorString)
		}
		pubs = append(pubs, p)
	}
	return pubs, nil
}

// splitAuthorString splits Europe PMC's "Smith A, Jones B, Wu C." form into
// individual names.
func splitAuthorString(s string) []string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	var authors []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// Europe PMC API JSON structures.
type europePMCResponse struct {
	HitCount   int `json:"hitCount"`
	ResultList struct {
		Result []europePMCResult `json:"result"`
	} `json:"resultList"`
}

type europePMCResult struct {
	ID           string `json:"id"`
	PMID         string `json:"pmid"`
	PMCID        string `json:"pmcid"`
	DOI          string `json:"doi"`
	Title        string `json:"title"`
	AbstractText string `json:"abstractText"`
	AuthorString string `json:"authorString"`
	PubYear      string `json:"pubYear"`
	CitedByCount int    `json:"citedByCount"`
}
