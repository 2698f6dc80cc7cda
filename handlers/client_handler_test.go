package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientFilter(t *testing.T) {
	t.Run("all listing parameters", func(t *testing.T) {
		req := httptest.NewRequest("GET",
			"/clients?search=maria&is_active=true&is_vip=false&deleted=true"+
				"&created_after=2026-01-01T00:00:00Z&created_before=2026-06-30T00:00:00Z"+
				"&page=2&size=10&sort_by=full_name&sort_dir=desc", nil)

		filter, err := parseClientFilter(req)
		require.NoError(t, err)

		assert.Equal(t, "maria", filter.Search)
		require.NotNil(t, filter.IsActive)
		assert.True(t, *filter.IsActive)
		require.NotNil(t, filter.IsVIP)
		assert.False(t, *filter.IsVIP)
		require.NotNil(t, filter.Deleted)
		assert.True(t, *filter.Deleted)
		require.NotNil(t, filter.CreatedAfter)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), filter.CreatedAfter.UTC())
		require.NotNil(t, filter.CreatedBefore)
		assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), filter.CreatedBefore.UTC())
		assert.Equal(t, 2, filter.Page.Page)
		assert.Equal(t, 10, filter.Page.Size)
		assert.Equal(t, "full_name", filter.Page.SortBy)
		assert.Equal(t, "desc", filter.Page.SortDir)
	})

	t.Run("absent parameters stay unset", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/clients", nil)

		filter, err := parseClientFilter(req)
		require.NoError(t, err)

		assert.Nil(t, filter.IsActive)
		assert.Nil(t, filter.IsVIP)
		assert.Nil(t, filter.Deleted)
		assert.Nil(t, filter.CreatedAfter)
		assert.Nil(t, filter.CreatedBefore)
		assert.Empty(t, filter.Search)
	})

	t.Run("invalid values are rejected by name", func(t *testing.T) {
		cases := []struct {
			name  string
			query string
		}{
			{"deleted", "deleted=maybe"},
			{"created_after", "created_after=yesterday"},
			{"created_before", "created_before=2026-13-01"},
			{"is_active", "is_active=si"},
			{"page", "page=one"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := httptest.NewRequest("GET", "/clients?"+tc.query, nil)
				_, err := parseClientFilter(req)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.name)
			})
		}
	})
}
