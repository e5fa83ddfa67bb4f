package store

// Page is the envelope attached to every paginated response. Page numbers
// are 1-indexed; Total counts the whole filtered set, not just this page.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// TotalPages returns the number of pages the filtered set spans.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	pages := int(p.Total) / p.PageSize
	if int(p.Total)%p.PageSize != 0 {
		pages++
	}
	return pages
}
