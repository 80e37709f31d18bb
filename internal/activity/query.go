// Package activity keeps the change history of catalog records: who was
// added, which tab was saved, which appraisal was recorded.
package activity

import (
	"slices"
	"strings"
	"time"

	"github.com/matthewbaird/silic/internal/types"
)

// QueryOptions controls filtering and pagination for a record's history.
type QueryOptions struct {
	Since      *time.Time
	Until      *time.Time
	Categories []string
	MinWeight  string // default "info"
	Limit      int    // default 100, max 500
	Cursor     string // occurred_at of the last entry of the previous page
}

// SearchOptions controls filtering for summary search.
type SearchOptions struct {
	EntityType string
	Since      *time.Time
	Categories []string
	Limit      int // default 20
}

// DefaultQueryOptions returns the last six months, 100 entries.
func DefaultQueryOptions() QueryOptions {
	sixMonthsAgo := time.Now().AddDate(0, -6, 0)
	return QueryOptions{
		Since:     &sixMonthsAgo,
		MinWeight: "info",
		Limit:     100,
	}
}

// DefaultSearchOptions returns SearchOptions with a limit of 20.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Limit: 20}
}

// cursorTime parses the page cursor; a malformed cursor is ignored.
func (o QueryOptions) cursorTime() (time.Time, bool) {
	if o.Cursor == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, o.Cursor)
	return t, err == nil
}

// matches mirrors entityPredicate for in-memory entries.
func (o QueryOptions) matches(e types.ActivityEntry) bool {
	switch {
	case o.Since != nil && e.OccurredAt.Before(*o.Since),
		o.Until != nil && e.OccurredAt.After(*o.Until),
		len(o.Categories) > 0 && !slices.Contains(o.Categories, e.Category),
		o.MinWeight != "" && !AtLeast(e.Weight, o.MinWeight):
		return false
	}
	if c, ok := o.cursorTime(); ok && !e.OccurredAt.Before(c) {
		return false
	}
	return true
}

// matches mirrors searchPredicate for in-memory entries; q is already
// lowercased.
func (o SearchOptions) matches(q string, e types.ActivityEntry) bool {
	switch {
	case !strings.Contains(strings.ToLower(e.Summary), q),
		o.EntityType != "" && e.IndexedEntityType != o.EntityType,
		o.Since != nil && e.OccurredAt.Before(*o.Since),
		len(o.Categories) > 0 && !slices.Contains(o.Categories, e.Category):
		return false
	}
	return true
}

var weightRank = map[string]int{
	"info":  0,
	"minor": 1,
	"major": 2,
}

// AtLeast reports whether weight is at or above min. Unknown weights rank
// as info.
func AtLeast(weight, min string) bool {
	return weightRank[weight] >= weightRank[min]
}

// weightsAtLeast lists the known weights at or above min.
func weightsAtLeast(min string) []string {
	var out []string
	for w := range weightRank {
		if AtLeast(w, min) {
			out = append(out, w)
		}
	}
	return out
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 || limit > max {
		return def
	}
	return limit
}
