package domain

type PaginationParams struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"page_size" query:"page_size"`
}

type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func NewPaginatedResponse[T any](data []T, page, pageSize int, totalItems int64) PaginatedResponse[T] {
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))

	return PaginatedResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Normalize clamps both fields into usable ranges. Used by the forgiving
// list endpoints (gallery, catalog, audit).
func (p *PaginationParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

const (
	queuePageMax     = 1000
	queuePageSizeMax = 50
)

// ValidateQueue applies the moderation-queue contract: the page number is
// validated (1-based, capped at 1000) while the page size is clamped into
// [1,50] rather than rejected.
func (p *PaginationParams) ValidateQueue() error {
	if p.Page < 1 || p.Page > queuePageMax {
		return ValidationError("page must be between 1 and 1000")
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}
	if p.PageSize > queuePageSizeMax {
		p.PageSize = queuePageSizeMax
	}
	return nil
}

func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
