// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// ResultFile is the on-disk representation of a search and its results.
// The researcher can save a search to a file and reload it later without
// re-querying any API.
type ResultFile struct {
	Query   types.SearchQuery  `yaml:"query"`
	Result  types.SearchResult `yaml:"result"`
	SavedAt time.Time          `yaml:"saved_at"`
}

// WriteResultFile saves the query and its result to a YAML file.
func WriteResultFile(path string, q types.SearchQuery, result *types.SearchResult) error {
	rf := ResultFile{
		Query:   q,
		Result:  *result,
		SavedAt: time.Now().UTC(),
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
