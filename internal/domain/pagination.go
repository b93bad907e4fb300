package domain

// Page size bounds for offset-paginated listings such as the admin profile list.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams selects one 1-based page of an offset-paginated listing.
type PaginationParams struct {
	Page     int
	PageSize int
}

// NewPaginationParams normalizes raw values: page below 1 becomes 1, page size below 1 becomes
// DefaultPageSize and anything above MaxPageSize is capped.
func NewPaginationParams(page, pageSize int) PaginationParams {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return PaginationParams{Page: page, PageSize: pageSize}
}

// Offset returns the number of rows before the current page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages is ceil(total / PageSize), or 0 when PageSize is not positive.
func (p PaginationParams) TotalPages(total int) int {
	if p.PageSize <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}
