// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sdodlapa/OmicsOracle-sub017/internal/httputil"
	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// NCBI E-utilities endpoints for the GEO DataSets database. Declared as
// vars so tests can substitute an httptest server.
var (
	geoESearchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	geoESummaryBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"
)

// GEOBackend queries NCBI GEO through the two-step E-utilities flow:
// esearch resolves a term to internal UIDs, esummary expands UIDs to
// records. An API key raises the rate limit from 3 to 10 requests/s.
type GEOBackend struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Name returns the backend identifier.
func (b *GEOBackend) Name() string { return "geo" }

// Search runs a free-text GEO search. Organism and record-type filters are
// pushed into the Entrez term; the sample-count floor is applied client
// side because GEO has no such field qualifier.
func (b *GEOBackend) Search(ctx context.Context, query string, filters types.SearchFilters, maxResults int) ([]types.DatasetRecord, error) {
	if maxResults <= 0 {
		maxResults = 20
	}

	term := query
	if filters.Organism != "" {
		term += fmt.Sprintf(` AND "%s"[Organism]`, filters.Organism)
	}
	if filters.RecordType != "" {
		term += fmt.Sprintf(" AND %s[Entry Type]", strings.ToUpper(filters.RecordType))
	}

	// Over-fetch when a sample floor will thin the list afterwards.
	fetchCount := maxResults
	if filters.MinSampleCount > 0 {
		fetchCount = maxResults * 3
	}

	uids, err := b.esearch(ctx, term, fetchCount)
	if err != nil {
		return nil, err
	}
	if len(uids) == 0 {
		return nil, nil
	}

	records, err := b.esummary(ctx, uids)
	if err != nil {
		return nil, err
	}

	if filters.MinSampleCount > 0 {
		filtered := records[:0]
		for _, r := range records {
			if r.SampleCount >= filters.MinSampleCount {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	if len(records) > maxResults {
		records = records[:maxResults]
	}
	return records, nil
}

// Fetch retrieves one record by accession using the ACCN field qualifier.
func (b *GEOBackend) Fetch(ctx context.Context, accession string) (types.DatasetRecord, error) {
	uids, err := b.esearch(ctx, accession+"[ACCN]", 1)
	if err != nil {
		return types.DatasetRecord{}, err
	}
	if len(uids) == 0 {
		return types.DatasetRecord{}, fmt.Errorf("accession %s not found in GEO", accession)
	}

	records, err := b.esummary(ctx, uids[:1])
	if err != nil {
		return types.DatasetRecord{}, err
	}
	if len(records) == 0 {
		return types.DatasetRecord{}, fmt.Errorf("no summary for accession %s", accession)
	}
	return records[0], nil
}

func (b *GEOBackend) esearch(ctx context.Context, term string, retmax int) ([]string, error) {
	params := url.Values{
		"db":      {"gds"},
		"term":    {term},
		"retmax":  {fmt.Sprintf("%d", retmax)},
		"retmode": {"json"},
	}
	if b.APIKey != "" {
		params.Set("api_key", b.APIKey)
	}

	var er esearchResponse
	if err := b.getJSON(ctx, geoESearchBase+"?"+params.Encode(), &er); err != nil {
		return nil, fmt.Errorf("GEO esearch: %w", err)
	}
	return er.ESearchResult.IDList, nil
}

func (b *GEOBackend) esummary(ctx context.Context, uids []string) ([]types.DatasetRecord, error) {
	params := url.Values{
		"db":      {"gds"},
		"id":      {strings.Join(uids, ",")},
		"retmode": {"json"},
	}
	if b.APIKey != "" {
		params.Set("api_key", b.APIKey)
	}

	var sr esummaryResponse
	if err := b.getJSON(ctx, geoESummaryBase+"?"+params.Encode(), &sr); err != nil {
		return nil, fmt.Errorf("GEO esummary: %w", err)
	}

	// Iterate the uids field to keep Entrez relevance order; the result
	// object's other keys are unordered.
	var records []types.DatasetRecord
	for _, uid := range sr.Result.UIDs {
		raw, ok := sr.Result.Docs[uid]
		if !ok {
			continue
		}
		var doc gdsDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		records = append(records, doc.toRecord())
	}
	return records, nil
}

func (b *GEOBackend) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// E-utilities JSON structures.
type esearchResponse struct {
	ESearchResult struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// esummaryResponse carries a result object whose keys are the UIDs plus a
// "uids" ordering array, so per-document fields stay raw until keyed.
type esummaryResponse struct {
	Result esummaryResult `json:"result"`
}

type esummaryResult struct {
	UIDs []string
	Docs map[string]json.RawMessage
}

func (r *esummaryResult) UnmarshalJSON(data []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	if raw, ok := all["uids"]; ok {
		if err := json.Unmarshal(raw, &r.UIDs); err != nil {
			return err
		}
		delete(all, "uids")
	}
	r.Docs = all
	return nil
}

type gdsDocument struct {
	Accession string          `json:"accession"`
	Title     string          `json:"title"`
	Summary   string          `json:"summary"`
	Taxon     string          `json:"taxon"`
	GPL       string          `json:"gpl"`
	NSamples  int             `json:"n_samples"`
	PDat      string          `json:"pdat"`
	EntryType string          `json:"entrytype"`
	Samples   json.RawMessage `json:"samples"`
}

func (d gdsDocument) toRecord() types.DatasetRecord {
	r := types.DatasetRecord{
		Accession:   d.Accession,
		Title:       d.Title,
		Summary:     d.Summary,
		Organism:    d.Taxon,
		SampleCount: d.NSamples,
	}
	if d.GPL != "" {
		r.Platform = "GPL" + d.GPL
	}
	if d.PDat != "" {
		if t, err := time.Parse("2006/01/02", d.PDat); err == nil {
			r.PublishedAt = t
		}
	}
	return r
}
