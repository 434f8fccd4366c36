package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/govidsearch/internal/search"
)

func TestCalculatePagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		totalCount int
		wantPages  int
		wantNext   bool
		wantPrev   bool
	}{
		{name: "empty result keeps one page", page: 1, pageSize: 20, totalCount: 0, wantPages: 1},
		{name: "exact multiple", page: 1, pageSize: 20, totalCount: 40, wantPages: 2, wantNext: true},
		{name: "partial last page", page: 2, pageSize: 20, totalCount: 41, wantPages: 3, wantNext: true, wantPrev: true},
		{name: "single item", page: 1, pageSize: 20, totalCount: 1, wantPages: 1},
		{name: "last page", page: 3, pageSize: 20, totalCount: 41, wantPages: 3, wantPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := search.CalculatePagination(tt.page, tt.pageSize, tt.totalCount)

			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.pageSize, p.PageSize)
			assert.Equal(t, tt.totalCount, p.TotalCount)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantPrev, p.HasPrevious)

			if tt.wantNext {
				require.NotNil(t, p.NextPage)
				assert.Equal(t, tt.page+1, *p.NextPage)
			} else {
				assert.Nil(t, p.NextPage)
			}
			if tt.wantPrev {
				require.NotNil(t, p.PreviousPage)
				assert.Equal(t, tt.page-1, *p.PreviousPage)
			} else {
				assert.Nil(t, p.PreviousPage)
			}
		})
	}
}
