package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPagination(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative", -4, -1, 1, 10},
		{"caps page size", 2, 500, 2, 100},
		{"caps huge page", math.MaxInt, 100, MaxPage, 100},
		{"keeps regular values", 3, 25, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GetPagination(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
			assert.GreaterOrEqual(t, p.Offset(), 0)
		})
	}
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse[string](nil, 21, GetPagination(3, 10))
	assert.NotNil(t, resp.Items)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 3, resp.Page)

	empty := NewListResponse([]string{}, 0, GetPagination(1, 10))
	assert.Equal(t, 1, empty.TotalPages)
}
