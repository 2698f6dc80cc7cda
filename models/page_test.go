package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	testCases := []struct {
		name     string
		in       PageRequest
		expected PageRequest
	}{
		{
			name:     "zero value gets defaults",
			in:       PageRequest{},
			expected: PageRequest{Page: 0, Size: 20, SortBy: "created_at", SortDir: SortAsc},
		},
		{
			name:     "negative page clamps to zero",
			in:       PageRequest{Page: -3, Size: 10},
			expected: PageRequest{Page: 0, Size: 10, SortBy: "created_at", SortDir: SortAsc},
		},
		{
			name:     "oversized page clamps to 100",
			in:       PageRequest{Size: 5000},
			expected: PageRequest{Page: 0, Size: 100, SortBy: "created_at", SortDir: SortAsc},
		},
		{
			name:     "explicit sort is preserved",
			in:       PageRequest{Page: 2, Size: 50, SortBy: "full_name", SortDir: SortDesc},
			expected: PageRequest{Page: 2, Size: 50, SortBy: "full_name", SortDir: SortDesc},
		},
		{
			name:     "invalid direction falls back to asc",
			in:       PageRequest{Size: 10, SortDir: "sideways"},
			expected: PageRequest{Page: 0, Size: 10, SortBy: "created_at", SortDir: SortAsc},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.in.Normalize("created_at"))
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 0, Size: 20}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 2, Size: 20}.Offset())
	assert.Equal(t, 15, PageRequest{Page: 3, Size: 5}.Offset())
}

func TestNewPageResponse(t *testing.T) {
	t.Run("partial last page rounds up", func(t *testing.T) {
		req := PageRequest{Page: 0, Size: 20}
		resp := NewPageResponse([]string{"a", "b"}, req, 41)

		assert.Equal(t, []string{"a", "b"}, resp.Content)
		assert.Equal(t, 0, resp.Page)
		assert.Equal(t, 20, resp.Size)
		assert.Equal(t, int64(41), resp.TotalElements)
		assert.Equal(t, 3, resp.TotalPages)
	})

	t.Run("exact fit", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2, 3}, PageRequest{Size: 3}, 6)
		assert.Equal(t, 2, resp.TotalPages)
	})

	t.Run("empty result", func(t *testing.T) {
		resp := NewPageResponse([]int{}, PageRequest{Size: 20}, 0)
		assert.Equal(t, 0, resp.TotalPages)
		assert.Empty(t, resp.Content)
	})
}
