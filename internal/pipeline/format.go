// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// FormatTable writes the result as human-readable tables to w, datasets
// first, then publications.
func FormatTable(result *types.SearchResult, w io.Writer) {
	if result.TotalResults == 0 {
		fmt.Fprintln(w, "No results found.")
		printErrors(result, w)
		return
	}

	if len(result.Datasets) > 0 {
		fmt.Fprintf(w, "Datasets (%d)\n", len(result.Datasets))
		fmt.Fprintf(w, "%-10s  %-56s  %-20s  %-8s  %s\n",
			"Accession", "Title", "Organism", "Samples", "Released")
		fmt.Fprintln(w, strings.Repeat("-", 104))
		for _, d := range result.Datasets {
			released := ""
			if !d.PublishedAt.IsZero() {
				released = d.PublishedAt.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%-10s  %-56s  %-20s  %-8d  %s\n",
				d.Accession, truncate(d.Title, 56), truncate(d.Organism, 20),
				d.SampleCount, released)
		}
		fmt.Fprintln(w)
	}

	if len(result.Publications) > 0 {
		fmt.Fprintf(w, "Publications (%d)\n", len(result.Publications))
		fmt.Fprintf(w, "%-4s  %-56s  %-20s  %-4s  %-9s  %s\n",
			"Rank", "Title", "Authors", "Year", "Citations", "Source")
		fmt.Fprintln(w, strings.Repeat("-", 108))
		for i, p := range result.Publications {
			year := ""
			if p.Year > 0 {
				year = fmt.Sprintf("%d", p.Year)
			}
			fmt.Fprintf(w, "%-4d  %-56s  %-20s  %-4s  %-9d  %s\n",
				i+1, truncate(p.Title, 56), formatAuthors(p.Authors),
				year, p.CitationCount, p.Source)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d results in %d ms", result.TotalResults, result.SearchTimeMS)
	if result.CacheHit {
		fmt.Fprint(w, " (cached)")
	}
	fmt.Fprintln(w)
	printErrors(result, w)
}

// FormatJSON writes the full result as indented JSON to w.
func FormatJSON(result *types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printErrors(result *types.SearchResult, w io.Writer) {
	for _, e := range result.Errors {
		fmt.Fprintf(w, "warning: %s\n", e)
	}
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
