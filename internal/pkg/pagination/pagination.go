// Package pagination converts page/pageSize query values into offset arithmetic for list endpoints.
package pagination

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params is the resolved offset window plus the echoed request values.
type Params struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Skip     int `json:"-"`
	Take     int `json:"-"`
}

// Meta describes a page of results.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int64 `json:"totalPages"`
}

// Calculate applies defaults to missing (nil) values and returns skip = (page-1)*pageSize, take = pageSize.
// Range checks happen upstream; values below 1 fall back to the defaults.
func Calculate(page, pageSize *int) Params {
	p := DefaultPage
	if page != nil && *page >= 1 {
		p = *page
	}
	size := DefaultPageSize
	if pageSize != nil && *pageSize >= 1 {
		size = *pageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Params{
		Page:     p,
		PageSize: size,
		Skip:     (p - 1) * size,
		Take:     size,
	}
}

// NewMeta computes totalPages = ceil(totalCount/pageSize). currentPage may exceed totalPages.
func NewMeta(currentPage, pageSize int, totalCount int64) Meta {
	var pages int64
	if totalCount > 0 && pageSize > 0 {
		size := int64(pageSize)
		pages = (totalCount + size - 1) / size
	}
	return Meta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  pages,
	}
}

// Meta builds the response metadata for p.
func (p Params) Meta(totalCount int64) Meta {
	return NewMeta(p.Page, p.PageSize, totalCount)
}
