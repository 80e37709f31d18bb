package query

import "github.com/matthewbaird/silic/internal/types"

// Page is one slice of a filtered list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
	// From and To are the 1-based positions of the first and last item
	// shown, both zero for an empty page.
	From int `json:"from"`
	To   int `json:"to"`
}

// Paginate slices items into pages of size and returns page number page,
// clamped to [1, TotalPages]. An empty list has one empty page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	page = min(max(page, 1), pages)

	start := (page - 1) * size
	end := min(start+size, total)
	out := Page[T]{
		Items:      append([]T{}, items[start:end]...),
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: pages,
	}
	if end > start {
		out.From, out.To = start+1, end
	}
	return out
}

// State is the filter and page position of a list view.
type State struct {
	Criteria Criteria
	Page     int
	PageSize int
}

// NewState returns a state on page 1 with the default page size.
func NewState() State {
	return State{Page: 1, PageSize: DefaultPageSize}
}

// SetCriteria replaces the filter and goes back to page 1.
func (s *State) SetCriteria(c Criteria) {
	s.Criteria = c
	s.Page = 1
}

// SetPageSize changes the page size and goes back to page 1.
func (s *State) SetPageSize(n int) {
	if n < 1 {
		n = DefaultPageSize
	}
	s.PageSize = min(n, MaxPageSize)
	s.Page = 1
}

// GoTo moves to page n; Apply clamps it to the available pages.
func (s *State) GoTo(n int) { s.Page = n }

// Apply filters props and returns the current page. The state's page is
// updated to the clamped value.
func (s *State) Apply(props []types.Property) (filtered []types.Property, page Page[types.Property]) {
	filtered = Filter(props, s.Criteria)
	page = Paginate(filtered, s.Page, s.PageSize)
	s.Page = page.Page
	s.PageSize = page.PageSize
	return filtered, page
}
