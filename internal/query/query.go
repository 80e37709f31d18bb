// Package query filters and paginates property lists. It never mutates its
// input; filters always run against the store's originals snapshot.
package query

import (
	"strings"
	"time"

	"github.com/matthewbaird/silic/internal/types"
)

// DefaultPageSize is the number of rows per page of a list view.
const DefaultPageSize = 10

// MaxPageSize bounds the page size accepted from clients.
const MaxPageSize = 100

// Criteria is a transient filter over properties. The zero value matches
// everything.
type Criteria struct {
	// Text is matched case-insensitively as a substring of the code,
	// denomination or city.
	Text    string
	Status  types.PropertyStatus
	EndFrom *time.Time
	EndTo   *time.Time
}

// Empty reports whether c matches every property.
func (c Criteria) Empty() bool {
	return strings.TrimSpace(c.Text) == "" && c.Status == "" && c.EndFrom == nil && c.EndTo == nil
}

// Match reports whether p satisfies every set criterion. Properties without
// a validity end never match a date range.
func (c Criteria) Match(p types.Property) bool {
	if q := strings.ToLower(strings.TrimSpace(c.Text)); q != "" {
		if !strings.Contains(strings.ToLower(p.Code), q) &&
			!strings.Contains(strings.ToLower(p.Denomination), q) &&
			!strings.Contains(strings.ToLower(p.City), q) {
			return false
		}
	}
	if c.Status != "" && p.Status != c.Status {
		return false
	}
	if c.EndFrom != nil || c.EndTo != nil {
		end := p.Validity.End
		if end == nil {
			return false
		}
		if c.EndFrom != nil && end.Before(*c.EndFrom) {
			return false
		}
		if c.EndTo != nil && end.After(*c.EndTo) {
			return false
		}
	}
	return true
}

// Filter returns the properties matching c, in input order.
func Filter(props []types.Property, c Criteria) []types.Property {
	if c.Empty() {
		return append([]types.Property(nil), props...)
	}
	out := make([]types.Property, 0, len(props))
	for _, p := range props {
		if c.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
