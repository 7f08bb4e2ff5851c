package repository

import (
	"testing"

	"github.com/storecart/storecart/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageMeta(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		meta := NewPageMeta(2, 10, 35)
		assert.Equal(t, 2, meta.Page)
		assert.Equal(t, 10, meta.Limit)
		assert.Equal(t, int64(35), meta.TotalDocuments)
		assert.Equal(t, 4, meta.TotalPages)
		require.NotNil(t, meta.NextPage)
		assert.Equal(t, 3, *meta.NextPage)
		require.NotNil(t, meta.PreviousPage)
		assert.Equal(t, 1, *meta.PreviousPage)
	})

	t.Run("first page has no previous", func(t *testing.T) {
		meta := NewPageMeta(1, 10, 35)
		assert.Nil(t, meta.PreviousPage)
		require.NotNil(t, meta.NextPage)
		assert.Equal(t, 2, *meta.NextPage)
	})

	t.Run("last page has no next", func(t *testing.T) {
		meta := NewPageMeta(4, 10, 35)
		assert.Nil(t, meta.NextPage)
		require.NotNil(t, meta.PreviousPage)
		assert.Equal(t, 3, *meta.PreviousPage)
	})

	t.Run("exact multiple boundary", func(t *testing.T) {
		meta := NewPageMeta(3, 10, 30)
		assert.Equal(t, 3, meta.TotalPages)
		assert.Nil(t, meta.NextPage)
	})

	t.Run("single page", func(t *testing.T) {
		meta := NewPageMeta(1, 10, 7)
		assert.Equal(t, 1, meta.TotalPages)
		assert.Nil(t, meta.NextPage)
		assert.Nil(t, meta.PreviousPage)
	})

	t.Run("empty result", func(t *testing.T) {
		meta := NewPageMeta(1, 10, 0)
		assert.Equal(t, 0, meta.TotalPages)
		assert.Equal(t, int64(0), meta.TotalDocuments)
		assert.Nil(t, meta.NextPage)
		assert.Nil(t, meta.PreviousPage)
	})

	t.Run("page beyond range still reports totals", func(t *testing.T) {
		meta := NewPageMeta(9, 10, 35)
		assert.Equal(t, 4, meta.TotalPages)
		assert.Nil(t, meta.NextPage)
		require.NotNil(t, meta.PreviousPage)
		assert.Equal(t, 8, *meta.PreviousPage)
	})
}

func TestValidatePage(t *testing.T) {
	assert.NoError(t, validatePage(1, 1))
	assert.NoError(t, validatePage(3, 50))

	for _, tc := range []struct {
		name        string
		page, limit int
	}{
		{"zero page", 0, 10},
		{"zero limit", 1, 0},
		{"negative page", -1, 10},
		{"negative limit", 1, -5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePage(tc.page, tc.limit)
			require.Error(t, err)
			appErr := utils.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 400, appErr.Code)
			assert.Equal(t, "Page and limit must be greater than 0", appErr.Message)
		})
	}
}

type testRecord struct {
	ID   uint
	Name string
}

// Invalid pagination input must be rejected before the repository touches
// the database at all; a nil handle proves no query ran.
func TestPaginateRejectsBadInputWithoutQuerying(t *testing.T) {
	repo := New[testRecord](nil)

	_, err := repo.Paginate(nil, PageOptions{Page: 0, Limit: 10})
	require.Error(t, err)
	assert.Equal(t, "Page and limit must be greater than 0", utils.GetAppError(err).Message)

	_, err = repo.Dropdown(nil, "name", PageOptions{Page: 1, Limit: 0})
	require.Error(t, err)

	var rows []testRecord
	_, err = repo.PaginatedAggregate(&rows, -1, 10)
	require.Error(t, err)
}
