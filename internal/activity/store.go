package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/matthewbaird/silic/internal/types"
)

// Store is the interface for reading and writing activity entries.
type Store interface {
	// WriteEntries writes one or more activity entries (one change, many entries).
	WriteEntries(ctx context.Context, entries []types.ActivityEntry) error

	// QueryByEntity returns the history of one record, newest first.
	QueryByEntity(ctx context.Context, entityType, entityID string, opts QueryOptions) (entries []types.ActivityEntry, nextCursor string, totalCount int, err error)

	// Search matches summaries case-insensitively.
	Search(ctx context.Context, query string, opts SearchOptions) (entries []types.ActivityEntry, totalCount int, err error)
}

const table = "activity_entries"

var columns = []string{
	"event_id", "event_type", "occurred_at", "indexed_entity_type", "indexed_entity_id",
	"entity_role", "source_refs", "summary", "category", "weight", "polarity", "payload",
}

// SQLStore implements Store on SQLite. Timestamps are stored as Unix
// nanoseconds so ordering and cursors compare integers.
type SQLStore struct {
	drv *entsql.Driver
}

// NewSQLStore wraps an open SQLite handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{drv: entsql.OpenDB(dialect.SQLite, db)}
}

// CreateTable creates the activity table and its lookup index.
func (s *SQLStore) CreateTable(ctx context.Context) error {
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS activity_entries (
			event_id            TEXT NOT NULL,
			event_type          TEXT NOT NULL,
			occurred_at         INTEGER NOT NULL,
			indexed_entity_type TEXT NOT NULL,
			indexed_entity_id   TEXT NOT NULL,
			entity_role         TEXT NOT NULL,
			source_refs         TEXT NOT NULL DEFAULT '[]',
			summary             TEXT NOT NULL,
			category            TEXT NOT NULL,
			weight              TEXT NOT NULL,
			polarity            TEXT NOT NULL,
			payload             BLOB,
			PRIMARY KEY (indexed_entity_type, indexed_entity_id, event_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_entity_time
			ON activity_entries (indexed_entity_type, indexed_entity_id, occurred_at DESC)`,
	} {
		if err := s.drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("creating %s: %w", table, err)
		}
	}
	return nil
}

// WriteEntries inserts entries, ignoring ones already written.
func (s *SQLStore) WriteEntries(ctx context.Context, entries []types.ActivityEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ins := entsql.Dialect(dialect.SQLite).Insert(table).Columns(columns...)
	for _, e := range entries {
		refs, err := json.Marshal(e.SourceRefs)
		if err != nil {
			return fmt.Errorf("encoding source refs of %s: %w", e.EventID, err)
		}
		ins.Values(
			e.EventID, e.EventType, e.OccurredAt.UnixNano(), e.IndexedEntityType, e.IndexedEntityID,
			e.EntityRole, string(refs), e.Summary, e.Category, e.Weight, e.Polarity, []byte(e.Payload),
		)
	}
	query, args := ins.OnConflict(entsql.DoNothing()).Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("writing activity entries: %w", err)
	}
	return nil
}

// QueryByEntity returns one record's history with filtering and pagination.
func (s *SQLStore) QueryByEntity(ctx context.Context, entityType, entityID string, opts QueryOptions) ([]types.ActivityEntry, string, int, error) {
	limit := clampLimit(opts.Limit, 100, 500)
	where := func() *entsql.Predicate { return entityPredicate(entityType, entityID, opts) }

	query, args := entsql.Dialect(dialect.SQLite).
		Select(columns...).
		From(entsql.Table(table)).
		Where(where()).
		OrderBy(entsql.Desc("occurred_at")).
		Limit(limit + 1).
		Query()
	entries, err := s.scan(ctx, query, args)
	if err != nil {
		return nil, "", 0, fmt.Errorf("querying activity entries: %w", err)
	}

	var next string
	if len(entries) > limit {
		entries = entries[:limit]
		next = entries[len(entries)-1].OccurredAt.Format(time.RFC3339Nano)
	}

	total, err := s.count(ctx, where())
	if err != nil {
		return nil, "", 0, err
	}
	return entries, next, total, nil
}

// Search matches summaries case-insensitively.
func (s *SQLStore) Search(ctx context.Context, q string, opts SearchOptions) ([]types.ActivityEntry, int, error) {
	limit := clampLimit(opts.Limit, 20, 500)
	where := func() *entsql.Predicate { return searchPredicate(q, opts) }

	query, args := entsql.Dialect(dialect.SQLite).
		Select(columns...).
		From(entsql.Table(table)).
		Where(where()).
		OrderBy(entsql.Desc("occurred_at")).
		Limit(limit).
		Query()
	entries, err := s.scan(ctx, query, args)
	if err != nil {
		return nil, 0, fmt.Errorf("searching activity entries: %w", err)
	}
	total, err := s.count(ctx, where())
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func entityPredicate(entityType, entityID string, opts QueryOptions) *entsql.Predicate {
	preds := []*entsql.Predicate{
		entsql.EQ("indexed_entity_type", entityType),
		entsql.EQ("indexed_entity_id", entityID),
	}
	if opts.Since != nil {
		preds = append(preds, entsql.GTE("occurred_at", opts.Since.UnixNano()))
	}
	if opts.Until != nil {
		preds = append(preds, entsql.LTE("occurred_at", opts.Until.UnixNano()))
	}
	if len(opts.Categories) > 0 {
		preds = append(preds, entsql.In("category", anys(opts.Categories)...))
	}
	if opts.MinWeight != "" && opts.MinWeight != "info" {
		preds = append(preds, entsql.In("weight", anys(weightsAtLeast(opts.MinWeight))...))
	}
	if c, ok := opts.cursorTime(); ok {
		preds = append(preds, entsql.LT("occurred_at", c.UnixNano()))
	}
	return entsql.And(preds...)
}

func searchPredicate(q string, opts SearchOptions) *entsql.Predicate {
	preds := []*entsql.Predicate{entsql.ContainsFold("summary", q)}
	if opts.EntityType != "" {
		preds = append(preds, entsql.EQ("indexed_entity_type", opts.EntityType))
	}
	if opts.Since != nil {
		preds = append(preds, entsql.GTE("occurred_at", opts.Since.UnixNano()))
	}
	if len(opts.Categories) > 0 {
		preds = append(preds, entsql.In("category", anys(opts.Categories)...))
	}
	return entsql.And(preds...)
}

func (s *SQLStore) scan(ctx context.Context, query string, args []any) ([]types.ActivityEntry, error) {
	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []types.ActivityEntry
	for rows.Next() {
		var (
			e        types.ActivityEntry
			occurred int64
			refs     string
			payload  []byte
		)
		err := rows.Scan(
			&e.EventID, &e.EventType, &occurred, &e.IndexedEntityType, &e.IndexedEntityID,
			&e.EntityRole, &refs, &e.Summary, &e.Category, &e.Weight, &e.Polarity, &payload,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning activity entry: %w", err)
		}
		e.OccurredAt = time.Unix(0, occurred).UTC()
		_ = json.Unmarshal([]byte(refs), &e.SourceRefs)
		if len(payload) > 0 {
			e.Payload = payload
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLStore) count(ctx context.Context, where *entsql.Predicate) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(table)).
		Where(where).
		Query()
	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("counting activity entries: %w", err)
	}
	defer rows.Close()
	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("counting activity entries: %w", err)
		}
	}
	return n, rows.Err()
}

func anys(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
