package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) PageParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPageParams(c)
}

func TestGetPageParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := paramsFor(t, "")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, "created_at", p.SortBy)
		assert.Equal(t, "desc", p.Order)
		assert.Equal(t, "", p.Search)
	})

	t.Run("explicit values", func(t *testing.T) {
		p := paramsFor(t, "page=3&limit=25&sortBy=name&order=asc&search=mug")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 25, p.Limit)
		assert.Equal(t, "name", p.SortBy)
		assert.Equal(t, "asc", p.Order)
		assert.Equal(t, "mug", p.Search)
	})

	t.Run("garbage falls back to defaults", func(t *testing.T) {
		p := paramsFor(t, "page=abc&limit=xyz&order=sideways")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, "desc", p.Order)
	})

	// Out-of-range values pass through untouched; the repository rejects
	// them before running any query.
	t.Run("negative values pass through", func(t *testing.T) {
		p := paramsFor(t, "page=-2&limit=0")
		assert.Equal(t, -2, p.Page)
		assert.Equal(t, 0, p.Limit)
	})
}

func TestSortClause(t *testing.T) {
	p := PageParams{SortBy: "name", Order: "asc"}
	assert.Equal(t, "name asc", p.SortClause("name", "price"))

	// Unknown columns fall back to created_at so the clause never carries
	// arbitrary input.
	p = PageParams{SortBy: "password; DROP TABLE users", Order: "desc"}
	assert.Equal(t, "created_at desc", p.SortClause("name", "price"))
}
