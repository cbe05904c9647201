package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages,omitempty"`
	TotalItems int64 `json:"total_items,omitempty"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewOpenPagination describes one page of a source that does not report
// totals. A full page is taken to mean more results may follow.
func NewOpenPagination(page, pageSize, count int) *Pagination {
	if page < 1 {
		page = 1
	}
	p := &Pagination{
		Page:     page,
		PageSize: pageSize,
		HasMore:  count >= pageSize,
	}
	if count > 0 {
		p.From = (page-1)*pageSize + 1
		p.To = p.From + count - 1
	}
	return p
}
