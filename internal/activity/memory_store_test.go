package activity

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matthewbaird/silic/internal/types"
)

func testEntry(entityType, entityID, category, weight, polarity, summary string, daysAgo int) types.ActivityEntry {
	return types.ActivityEntry{
		EventID:           "test-" + summary,
		EventType:         "test_event",
		OccurredAt:        time.Now().AddDate(0, 0, -daysAgo),
		IndexedEntityType: entityType,
		IndexedEntityID:   entityID,
		EntityRole:        "subject",
		Summary:           summary,
		Category:          category,
		Weight:            weight,
		Polarity:          polarity,
	}
}

func fixtures() []types.ActivityEntry {
	return []types.ActivityEntry{
		testEntry("property", "im-1", "catalog", "major", "positive", "Imóvel 20000001 cadastrado", 40),
		testEntry("property", "im-1", "edit", "minor", "neutral", "Aba identificacao salva", 10),
		testEntry("property", "im-1", "appraisal", "info", "neutral", "Avaliação registrada", 5),
		testEntry("property", "im-1", "edit", "minor", "negative", "Aba contrato rejeitada", 1),
		testEntry("landlord", "loc-1", "catalog", "major", "positive", "Locador vinculado ao imóvel 20000001", 40),
	}
}

func openSQL(t *testing.T) *SQLStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	s := NewSQLStore(db)
	t.Cleanup(func() { db.Close() })
	if err := s.CreateTable(context.Background()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	return s
}

// stores runs each case against both implementations.
func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": openSQL(t),
	}
}

func TestStore_WriteAndQuery(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.WriteEntries(ctx, fixtures()); err != nil {
				t.Fatalf("WriteEntries: %v", err)
			}
			results, next, total, err := store.QueryByEntity(ctx, "property", "im-1", DefaultQueryOptions())
			if err != nil {
				t.Fatalf("QueryByEntity: %v", err)
			}
			if total != 4 {
				t.Errorf("total = %d, want 4", total)
			}
			if len(results) != 4 {
				t.Fatalf("results = %d, want 4", len(results))
			}
			if next != "" {
				t.Errorf("next cursor = %q, want empty", next)
			}
			if results[0].Summary != "Aba contrato rejeitada" {
				t.Errorf("first = %q, want newest entry", results[0].Summary)
			}
		})
	}
}

func TestStore_FilterCategoryAndWeight(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store.WriteEntries(ctx, fixtures())

			opts := DefaultQueryOptions()
			opts.Categories = []string{"edit"}
			results, _, total, err := store.QueryByEntity(ctx, "property", "im-1", opts)
			if err != nil {
				t.Fatalf("QueryByEntity: %v", err)
			}
			if total != 2 || len(results) != 2 {
				t.Errorf("edit entries = %d/%d, want 2", len(results), total)
			}

			opts = DefaultQueryOptions()
			opts.MinWeight = "major"
			results, _, _, err = store.QueryByEntity(ctx, "property", "im-1", opts)
			if err != nil {
				t.Fatalf("QueryByEntity: %v", err)
			}
			if len(results) != 1 || results[0].Weight != "major" {
				t.Errorf("major entries = %+v, want the one catalog entry", results)
			}
		})
	}
}

func TestStore_Since(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store.WriteEntries(ctx, fixtures())
			since := time.Now().AddDate(0, 0, -7)
			results, _, _, err := store.QueryByEntity(ctx, "property", "im-1", QueryOptions{Since: &since})
			if err != nil {
				t.Fatalf("QueryByEntity: %v", err)
			}
			if len(results) != 2 {
				t.Errorf("results = %d, want 2 within a week", len(results))
			}
		})
	}
}

func TestStore_Pagination(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store.WriteEntries(ctx, fixtures())

			page1, cursor, total, err := store.QueryByEntity(ctx, "property", "im-1", QueryOptions{Limit: 3})
			if err != nil {
				t.Fatalf("QueryByEntity: %v", err)
			}
			if len(page1) != 3 || total != 4 {
				t.Fatalf("page1 = %d/%d, want 3/4", len(page1), total)
			}
			if cursor == "" {
				t.Fatal("expected a next cursor")
			}

			page2, cursor, _, err := store.QueryByEntity(ctx, "property", "im-1", QueryOptions{Limit: 3, Cursor: cursor})
			if err != nil {
				t.Fatalf("QueryByEntity: %v", err)
			}
			if len(page2) != 1 {
				t.Errorf("page2 = %d, want 1", len(page2))
			}
			if cursor != "" {
				t.Errorf("cursor after last page = %q, want empty", cursor)
			}
		})
	}
}

func TestStore_Search(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store.WriteEntries(ctx, fixtures())

			results, total, err := store.Search(ctx, "20000001", DefaultSearchOptions())
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if total != 2 || len(results) != 2 {
				t.Errorf("matches = %d/%d, want 2", len(results), total)
			}

			results, _, err = store.Search(ctx, "ABA", SearchOptions{EntityType: "property"})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(results) != 2 {
				t.Errorf("case-insensitive matches = %d, want 2", len(results))
			}
		})
	}
}

func TestStores_IgnoreDuplicates(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			entries := fixtures()
			entries[0].SourceRefs = []types.SourceRef{{EntityType: "property", EntityID: "im-1", Role: "subject"}}
			entries[0].Payload = []byte(`{"code":"20000001"}`)

			if err := store.WriteEntries(ctx, entries); err != nil {
				t.Fatalf("WriteEntries: %v", err)
			}
			if err := store.WriteEntries(ctx, entries[:1]); err != nil {
				t.Fatalf("WriteEntries again: %v", err)
			}

			results, _, total, err := store.QueryByEntity(ctx, "property", "im-1", QueryOptions{Categories: []string{"catalog"}})
			if err != nil {
				t.Fatalf("QueryByEntity: %v", err)
			}
			if total != 1 {
				t.Fatalf("total = %d, want 1", total)
			}
			if len(results[0].SourceRefs) != 1 || results[0].SourceRefs[0].EntityID != "im-1" {
				t.Errorf("source refs = %+v", results[0].SourceRefs)
			}
		})
	}
}

func TestAtLeast(t *testing.T) {
	cases := []struct {
		weight, min string
		want        bool
	}{
		{"major", "minor", true},
		{"minor", "minor", true},
		{"info", "minor", false},
		{"unknown", "info", true},
		{"minor", "major", false},
	}
	for _, c := range cases {
		if got := AtLeast(c.weight, c.min); got != c.want {
			t.Errorf("AtLeast(%q, %q) = %v, want %v", c.weight, c.min, got, c.want)
		}
	}
}
