// Package kv keeps small JSON records by key. It backs the per-property
// appraisal records and can live in memory, in SQLite or in Redis.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key holds no record.
var ErrNotFound = errors.New("kv: key not found")

// Store is the key/value interface every backend implements.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Driver string

	// DSN is the SQLite data source name.
	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open connects the backend named by cfg.Driver. An empty driver selects
// the in-memory store.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.DSN)
	case DriverRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	return nil, fmt.Errorf("kv: unknown driver %q", cfg.Driver)
}
