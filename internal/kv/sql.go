package kv

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "modernc.org/sqlite"
)

const table = "kv_records"

// SQLStore implements Store on a single SQLite table through the ent SQL
// driver and query builder.
type SQLStore struct {
	drv *entsql.Driver
	now func() time.Time
}

// OpenSQLite opens dsn with the modernc driver and creates the table if it
// is missing. An empty dsn opens an in-memory database.
func OpenSQLite(ctx context.Context, dsn string) (*SQLStore, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := NewSQLStore(db)
	if err := s.CreateTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an open SQLite handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{drv: entsql.OpenDB(dialect.SQLite, db), now: time.Now}
}

// CreateTable creates the record table.
func (s *SQLStore) CreateTable(ctx context.Context) error {
	err := s.drv.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv_records (
			name       TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`, []any{}, nil)
	if err != nil {
		return fmt.Errorf("creating %s: %w", table, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(table)).
		Where(entsql.EQ("name", key)).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", key, err)
		}
		return nil, ErrNotFound
	}
	var value []byte
	if err := rows.Scan(&value); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(table).
		Columns("name", "value", "updated_at").
		Values(key, value, s.now().UTC()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(table).
		Where(entsql.EQ("name", key)).
		Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error { return s.drv.Close() }
