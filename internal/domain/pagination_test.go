package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	p := PaginationParams{Page: -3, PageSize: 0}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)

	p = PaginationParams{Page: 7, PageSize: 500}
	p.Normalize()
	assert.Equal(t, 7, p.Page)
	assert.Equal(t, 100, p.PageSize)
}

func TestPaginationValidateQueue(t *testing.T) {
	t.Run("Page Bounds Are Validated Not Clamped", func(t *testing.T) {
		for _, page := range []int{0, -1, 1001} {
			p := PaginationParams{Page: page, PageSize: 20}
			assert.Error(t, p.ValidateQueue(), "page %d", page)
		}
		p := PaginationParams{Page: 1000, PageSize: 20}
		assert.NoError(t, p.ValidateQueue())
	})

	t.Run("Page Size Is Clamped", func(t *testing.T) {
		p := PaginationParams{Page: 1, PageSize: 500}
		assert.NoError(t, p.ValidateQueue())
		assert.Equal(t, 50, p.PageSize)

		p = PaginationParams{Page: 1, PageSize: 0}
		assert.NoError(t, p.ValidateQueue())
		assert.Equal(t, 1, p.PageSize)
	})
}

func TestNewPaginatedResponse(t *testing.T) {
	r := NewPaginatedResponse([]int{1, 2, 3}, 2, 3, 7)

	assert.Equal(t, 3, r.TotalPages)
	assert.Equal(t, int64(7), r.TotalItems)
	assert.True(t, r.HasNext)
	assert.True(t, r.HasPrev)

	last := NewPaginatedResponse([]int{7}, 3, 3, 7)
	assert.False(t, last.HasNext)
}
