package dto

type PageQuery struct {
	Page         int    `form:"page"`
	ItemsPerPage int    `form:"items_per_page"`
	Search       string `form:"search"`
}

const defaultItemsPerPage = 30

// Normalize applies the defaults the original API used: page 1, 30 items.
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.ItemsPerPage < 1 {
		q.ItemsPerPage = defaultItemsPerPage
	}
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.ItemsPerPage
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}
