package handler

const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 12
	// MaxPageSize clamps the page size upper bound.
	MaxPageSize = 100
)

// Page is one page of a list.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    int
	NextPage    int
}

// Paginate cuts items into pages of pageSize and returns the requested one.
// Out of range pages are clamped.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	totalItems := len(items)

	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}

	if page > totalPages {
		page = totalPages
	}

	var (
		startIdx = (page - 1) * pageSize
		endIdx   = min(startIdx+pageSize, totalItems)
		paged    = []T{}
	)

	if startIdx < totalItems {
		paged = items[startIdx:endIdx]
	}

	return Page[T]{
		Items:       paged,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
		PrevPage:    page - 1,
		NextPage:    page + 1,
	}
}
