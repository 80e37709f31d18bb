package activity

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matthewbaird/silic/internal/types"
)

// MemoryStore implements Store on a slice. Like SQLStore it keeps one entry
// per (record, event) pair.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []types.ActivityEntry
	seen    map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]struct{})}
}

func entryKey(e types.ActivityEntry) string {
	return e.IndexedEntityType + "\x00" + e.IndexedEntityID + "\x00" + e.EventID
}

func (s *MemoryStore) WriteEntries(_ context.Context, entries []types.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		k := entryKey(e)
		if _, dup := s.seen[k]; dup {
			continue
		}
		s.seen[k] = struct{}{}
		s.entries = append(s.entries, e)
	}
	return nil
}

func (s *MemoryStore) QueryByEntity(_ context.Context, entityType, entityID string, opts QueryOptions) ([]types.ActivityEntry, string, int, error) {
	matched := s.collect(func(e types.ActivityEntry) bool {
		return e.IndexedEntityType == entityType && e.IndexedEntityID == entityID && opts.matches(e)
	})
	total := len(matched)

	var next string
	if limit := clampLimit(opts.Limit, 100, 500); total > limit {
		matched = matched[:limit]
		next = matched[limit-1].OccurredAt.Format(time.RFC3339Nano)
	}
	return matched, next, total, nil
}

func (s *MemoryStore) Search(_ context.Context, query string, opts SearchOptions) ([]types.ActivityEntry, int, error) {
	q := strings.ToLower(query)
	matched := s.collect(func(e types.ActivityEntry) bool { return opts.matches(q, e) })
	total := len(matched)
	if limit := clampLimit(opts.Limit, 20, 500); total > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// collect copies the entries keep accepts, newest first.
func (s *MemoryStore) collect(keep func(types.ActivityEntry) bool) []types.ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.ActivityEntry
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b types.ActivityEntry) int {
		return b.OccurredAt.Compare(a.OccurredAt)
	})
	return out
}
