package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantItems []int
		wantPage  int
		wantPages int
		wantPrev  bool
		wantNext  bool
	}{
		{name: "first page", page: 1, pageSize: 3, wantItems: []int{1, 2, 3}, wantPage: 1, wantPages: 3, wantNext: true},
		{name: "middle page", page: 2, pageSize: 3, wantItems: []int{4, 5, 6}, wantPage: 2, wantPages: 3, wantPrev: true, wantNext: true},
		{name: "last partial page", page: 3, pageSize: 3, wantItems: []int{7}, wantPage: 3, wantPages: 3, wantPrev: true},
		{name: "page beyond range is clamped", page: 9, pageSize: 3, wantItems: []int{7}, wantPage: 3, wantPages: 3, wantPrev: true},
		{name: "page below range is clamped", page: -1, pageSize: 5, wantItems: []int{1, 2, 3, 4, 5}, wantPage: 1, wantPages: 2, wantNext: true},
		{name: "invalid page size uses default", page: 1, pageSize: 0, wantItems: items, wantPage: 1, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.page, tt.pageSize)
			assert.Equal(t, tt.wantItems, p.Items)
			assert.Equal(t, tt.wantPage, p.CurrentPage)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, len(items), p.TotalItems)
			assert.Equal(t, tt.wantPrev, p.HasPrevPage)
			assert.Equal(t, tt.wantNext, p.HasNextPage)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]string{}, 3, 10)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNextPage)
}
