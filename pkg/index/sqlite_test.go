package index

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(&SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteSearch(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "index.db"))

	if err := store.Rebuild(ctx, sampleEntries()); err != nil {
		t.Fatalf("Rebuild returned error: %v", err)
	}

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "term matches title",
			query: Query{Terms: []string{"soup"}},
			want:  []string{"Pumpkin Soup"},
		},
		{
			name:  "term is case insensitive",
			query: Query{Terms: []string{"UMPKIN"}},
			want:  []string{"Pumpkin Soup"},
		},
		{
			name:  "term matches tag",
			query: Query{Terms: []string{"quick"}},
			want:  []string{"Morning Tea"},
		},
		{
			name:  "all terms must match",
			query: Query{Terms: []string{"soup", "dinner"}},
			want:  []string{"Pumpkin Soup"},
		},
		{
			name:  "conflicting terms match nothing",
			query: Query{Terms: []string{"soup", "dessert"}},
			want:  []string{},
		},
		{
			name:  "tag filter is exact",
			query: Query{Tag: "dessert"},
			want:  []string{"Apple Cake"},
		},
		{
			name:  "partial tag does not match",
			query: Query{Tag: "desser"},
			want:  []string{},
		},
		{
			name:  "group filter",
			query: Query{Group: "basics"},
			want:  []string{"Pumpkin Soup"},
		},
		{
			name:  "empty query returns everything ordered by title",
			query: Query{},
			want:  []string{"Apple Cake", "Morning Tea", "Pumpkin Soup"},
		},
		{
			name:  "limit caps results",
			query: Query{Limit: 1},
			want:  []string{"Apple Cake"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("Search returned error: %v", err)
			}
			if !reflect.DeepEqual(titles(got), tt.want) {
				t.Errorf("Search(%+v) = %v, want %v", tt.query, titles(got), tt.want)
			}
		})
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "index.db"))

	if err := store.Rebuild(ctx, sampleEntries()); err != nil {
		t.Fatalf("Rebuild returned error: %v", err)
	}

	got, err := store.Search(ctx, Query{Terms: []string{"tea"}})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("result count = %d, want 1", len(got))
	}

	e := got[0]
	if e.ID != "c3" || e.Path != "recipes/tea.yaml" || e.Image != "tea.png" {
		t.Errorf("entry = %+v", e)
	}
	if !reflect.DeepEqual(e.Tags, []string{"breakfast", "quick"}) {
		t.Errorf("tags = %v", e.Tags)
	}
	if e.Ingredients != 1 || e.Steps != 1 {
		t.Errorf("counts = %d, %d", e.Ingredients, e.Steps)
	}
}

func TestSQLiteRebuildReplaces(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "index.db"))

	if err := store.Rebuild(ctx, sampleEntries()); err != nil {
		t.Fatalf("first Rebuild returned error: %v", err)
	}
	replacement := []*Entry{{ID: "z9", Title: "Only One", Path: "one.yaml"}}
	if err := store.Rebuild(ctx, replacement); err != nil {
		t.Fatalf("second Rebuild returned error: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 after replacement", count)
	}

	got, err := store.Search(ctx, Query{})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Only One" {
		t.Errorf("entries = %v", titles(got))
	}
}

func TestSQLitePersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.db")

	first, err := NewSQLiteStore(&SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore returned error: %v", err)
	}
	if err := first.Rebuild(ctx, sampleEntries()); err != nil {
		t.Fatalf("Rebuild returned error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	second := openTestStore(t, path)
	count, err := second.Count(ctx)
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 3 {
		t.Errorf("count after reopen = %d, want 3", count)
	}
}

func TestSQLiteCloseTwice(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "index.db"))
	if err := store.Close(); err != nil {
		t.Fatalf("first Close returned error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
}
