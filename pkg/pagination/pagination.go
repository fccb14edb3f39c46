// Package pagination provides the arithmetic shared by every paginated
// read: skip offsets, page totals, and in-memory page slicing.
package pagination

// Params is a normalized page request. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Skip returns the record offset of the page.
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// TotalPages returns the number of pages needed for total records.
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}

// HasMore reports whether pages exist beyond the given one.
func HasMore(page, totalPages int) bool {
	return page < totalPages
}

// Slice returns the requested window of an already-materialized result set.
// Windows past the end are empty, never an error.
func Slice[T any](items []T, skip int64, limit int) []T {
	start := int(skip)
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
