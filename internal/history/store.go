// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a log of executed searches in a local SQLite
// database so users can review and re-run past queries.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

const dbFile = "history.db"

// Entry is one logged search.
type Entry struct {
	ID           string
	Query        string
	SearchType   types.SearchType
	TotalResults int
	CacheHit     bool
	DurationMS   int64
	Errors       []string
	CreatedAt    time.Time
}

// Store manages the search history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at dir/history.db,
// creating the schema if needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			search_type TEXT NOT NULL,
			total_results INTEGER NOT NULL,
			cache_hit INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			errors TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record logs one search. The generated entry id is returned. History is
// advisory; callers treat a Record error as a warning, not a search
// failure.
func (s *Store) Record(ctx context.Context, query string, result *types.SearchResult) (string, error) {
	id := uuid.NewString()
	errorsJSON, _ := json.Marshal(result.Errors)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (id, query, search_type, total_results, cache_hit, duration_ms, errors, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, query, string(result.SearchType), result.TotalResults,
		boolToInt(result.CacheHit), result.SearchTimeMS,
		string(errorsJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("recording search: %w", err)
	}
	return id, nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, search_type, total_results, cache_hit, duration_ms, errors, created_at
		 FROM searches ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			searchType string
			cacheHit   int
			errorsJSON string
			createdAt  string
		)
		if err := rows.Scan(&e.ID, &e.Query, &searchType, &e.TotalResults,
			&cacheHit, &e.DurationMS, &errorsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.SearchType = types.SearchType(searchType)
		e.CacheHit = cacheHit != 0
		if errorsJSON != "" {
			json.Unmarshal([]byte(errorsJSON), &e.Errors)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
