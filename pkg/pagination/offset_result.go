package pagination

// OffsetResult is one page of items plus the total count across all pages.
type OffsetResult[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	HasMore bool  `json:"has_more"`
}

// NewOffsetResult creates a new offset-based result. page is 1 based.
func NewOffsetResult[T any](items []T, total int64, page int, size int) *OffsetResult[T] {
	hasMore := int64(Offset(page, size)+size) < total

	return &OffsetResult[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		HasMore: hasMore,
	}
}

// Offset returns the number of items before page.
func Offset(page, size int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * size
}
