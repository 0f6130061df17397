// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Author   []CSLName `yaml:"author,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	Issued   *CSLDate  `yaml:"issued,omitempty"`
	DOI      string    `yaml:"DOI,omitempty"`
	PMID     string    `yaml:"PMID,omitempty"`
	PMCID    string    `yaml:"PMCID,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the result's publications as a CSL-YAML list to w.
func FormatCSL(result *types.SearchResult, w io.Writer) error {
	items := make([]CSLItem, len(result.Publications))
	for i, p := range result.Publications {
		items[i] = toCSLItem(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Publication to a CSLItem.
func toCSLItem(p types.Publication) CSLItem {
	item := CSLItem{
		ID:       p.PrimaryID(),
		Type:     "article-journal",
		Title:    p.Title,
		Abstract: p.Abstract,
		DOI:      p.DOI,
		PMID:     p.PMID,
		PMCID:    p.PMCID,
	}
	for _, a := range p.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if p.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{p.Year}}}
	}
	return item
}

// parseAuthorName splits a name string into CSL family/given parts. Comma
// form puts the family name first; otherwise it splits on the last space.
// Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if idx := strings.IndexByte(name, ','); idx >= 0 {
		return CSLName{
			Family: strings.TrimSpace(name[:idx]),
			Given:  strings.TrimSpace(name[idx+1:]),
		}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
