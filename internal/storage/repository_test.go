package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	repo, err := NewRepository(dbPath)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return repo
}

func TestRepository_RecordAndListSearches(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	searches := []Search{
		{Query: "older", Site: "stackoverflow", ResultCount: 3, SearchedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)},
		{Query: "newer", Tags: []string{"go", "http"}, Site: "stackoverflow", ResultCount: 0, SearchedAt: time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)},
	}
	for _, s := range searches {
		if err := repo.RecordSearch(ctx, s); err != nil {
			t.Fatalf("RecordSearch returned error: %v", err)
		}
	}

	listed, err := repo.ListSearches(ctx, 10)
	if err != nil {
		t.Fatalf("ListSearches returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 searches, got %d", len(listed))
	}
	if listed[0].Query != "newer" || listed[1].Query != "older" {
		t.Fatalf("expected newest first, got %+v", listed)
	}
	if len(listed[0].Tags) != 2 || listed[0].Tags[1] != "http" {
		t.Fatalf("unexpected tags: %+v", listed[0].Tags)
	}
	if listed[1].Tags != nil {
		t.Fatalf("expected no tags, got %+v", listed[1].Tags)
	}
	if !listed[1].SearchedAt.Equal(searches[0].SearchedAt) || listed[1].ResultCount != 3 {
		t.Fatalf("unexpected stored search: %+v", listed[1])
	}
}

func TestRepository_ListSearchesLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := repo.RecordSearch(ctx, Search{Query: "q", Site: "s", SearchedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("RecordSearch returned error: %v", err)
		}
	}

	listed, err := repo.ListSearches(ctx, 2)
	if err != nil {
		t.Fatalf("ListSearches returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 searches, got %d", len(listed))
	}
	if !listed[0].SearchedAt.Equal(base.Add(4 * time.Minute)) {
		t.Fatalf("expected most recent first, got %v", listed[0].SearchedAt)
	}
}
