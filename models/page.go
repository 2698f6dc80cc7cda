package models

// Sort directions accepted in page requests.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PageRequest describes the page, size and ordering of a listing.
type PageRequest struct {
	Page    int    `json:"page"`
	Size    int    `json:"size"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
}

// Normalize clamps the request to sane defaults: page >= 0, 1 <= size <= 100,
// a non-empty sort column and a valid direction.
func (p PageRequest) Normalize(defaultSortBy string) PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}
	if p.SortBy == "" {
		p.SortBy = defaultSortBy
	}
	if p.SortDir != SortDesc {
		p.SortDir = SortAsc
	}
	return p
}

// Offset returns the row offset of the page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// PageResponse is a single page of results plus paging metadata.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPageResponse assembles a page from the content slice and total count.
func NewPageResponse[T any](content []T, req PageRequest, total int64) PageResponse[T] {
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return PageResponse[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
