package browse

import "github.com/lexcards/lexcards-api/internal/domain"

// DefaultPageSize is the number of cards shown per page.
const DefaultPageSize = 5

// Page is one slice of a filtered card list together with the pagination
// state the caller needs to render navigation.
type Page struct {
	Items      []*domain.Card
	Number     int
	TotalPages int
	TotalItems int
}

// Paginate slices items into fixed-size pages and returns the requested one.
// There is always at least one page, even for an empty list. An out-of-range
// page number is clamped into [1, TotalPages] rather than treated as an
// error. A non-positive pageSize falls back to DefaultPageSize.
func Paginate(items []*domain.Card, pageSize, page int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Items:      items[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalItems: len(items),
	}
}
