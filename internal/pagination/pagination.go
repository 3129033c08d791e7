// Package pagination slices filtered result lists into fixed-size pages.
// Pages are 1-based.
package pagination

// TotalPages returns the number of pages needed for n items. Never below 1,
// so an empty list still has a valid page to land on.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp constrains page to [1, totalPages]. Callers must re-clamp (and reset
// to page 1 on filter changes) whenever the underlying list changes size.
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Page returns the given 1-based page of items. The page argument is assumed
// to be clamped already; out-of-range input yields an empty slice rather than
// a panic.
func Page[T any](items []T, pageSize, page int) []T {
	if pageSize <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
