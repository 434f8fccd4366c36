package search

// Pagination is derived purely from (page, pageSize, totalCount).
type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	PageSize     int  `json:"page_size"`
	TotalCount   int  `json:"total_count"`
	TotalPages   int  `json:"total_pages"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
	NextPage     *int `json:"next_page"`
	PreviousPage *int `json:"previous_page"`
}

// CalculatePagination computes paging metadata. A zero total still yields
// one page so clients always have a well-formed structure.
func CalculatePagination(page, pageSize, totalCount int) Pagination {
	totalPages := 1
	if totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	p := Pagination{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
	if p.HasNext {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrevious {
		prev := page - 1
		p.PreviousPage = &prev
	}
	return p
}
