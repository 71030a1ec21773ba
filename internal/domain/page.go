package domain

import "math"

// MaxPageLimit caps any requested page size.
const MaxPageLimit = 100

// PaginationParams carries page/limit values from the HTTP layer to the service layer.
// Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query params.
// Nil or non-positive values fall back to page 1 and defaultLimit; the limit
// is capped at MaxPageLimit.
func NewPaginationParams(page, limit *int, defaultLimit int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: defaultLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset returns the zero-based index of the first item on the page. It
// saturates at math.MaxInt instead of overflowing for absurd page numbers.
func (p PaginationParams) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Bounds returns the [start, end) slice indexes of this page within a
// collection of total items, always within [0, total]. Pages past the end
// yield an empty range.
func (p PaginationParams) Bounds(total int) (int, int) {
	start := min(p.Offset(), total)
	end := start + min(max(p.Limit, 0), total-start)
	return start, end
}

// Page is one page of results plus the size of the full result set.
type Page[T any] struct {
	Items []T
	Page  int
	Limit int
	Total int
}
