package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Search is one recorded query. Only the query is kept, never the results.
type Search struct {
	ID          int64
	Query       string
	Tags        []string
	Site        string
	ResultCount int
	SearchedAt  time.Time
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS searches (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  query TEXT NOT NULL,
  tags TEXT NOT NULL,
  site TEXT NOT NULL,
  result_count INTEGER NOT NULL,
  searched_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_searches_searched_at ON searches(searched_at);
`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (r *Repository) RecordSearch(ctx context.Context, s Search) error {
	searchedAt := s.SearchedAt
	if searchedAt.IsZero() {
		searchedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO searches (query, tags, site, result_count, searched_at)
VALUES (?, ?, ?, ?, ?)
`,
		s.Query,
		strings.Join(s.Tags, ";"),
		s.Site,
		s.ResultCount,
		searchedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("record search %q: %w", s.Query, err)
	}
	return nil
}

// ListSearches returns the most recent searches, newest first.
func (r *Repository) ListSearches(ctx context.Context, limit int) ([]Search, error) {
	if limit < 1 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, query, tags, site, result_count, searched_at
FROM searches
ORDER BY searched_at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query searches: %w", err)
	}
	defer rows.Close()

	searches := make([]Search, 0, limit)
	for rows.Next() {
		var s Search
		var tags, searchedAt string
		if err := rows.Scan(&s.ID, &s.Query, &tags, &s.Site, &s.ResultCount, &searchedAt); err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		if tags != "" {
			s.Tags = strings.Split(tags, ";")
		}
		s.SearchedAt, err = time.Parse(timeLayout, searchedAt)
		if err != nil {
			return nil, fmt.Errorf("parse searched_at %q: %w", searchedAt, err)
		}
		searches = append(searches, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return searches, nil
}
