package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageParams carries the pagination/sort/search query parameters of a list
// request.
type PageParams struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
	Search string
}

// GetPageParams reads page, limit, sortBy, order and search from the query
// string, falling back to the usual defaults.
func GetPageParams(c *gin.Context) PageParams {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		limit = 10
	}

	order := c.DefaultQuery("order", "desc")
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	return PageParams{
		Page:   page,
		Limit:  limit,
		SortBy: c.DefaultQuery("sortBy", "created_at"),
		Order:  order,
		Search: c.Query("search"),
	}
}

// SortClause renders the sort parameters as an ORDER BY fragment, refusing
// column names that are not in the allowed set.
func (p PageParams) SortClause(allowed ...string) string {
	for _, col := range allowed {
		if col == p.SortBy {
			return p.SortBy + " " + p.Order
		}
	}
	return "created_at " + p.Order
}
