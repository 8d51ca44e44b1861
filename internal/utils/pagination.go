// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaginationParams struct {
	PageNumber int    `json:"pageNumber"`
	PageSize   int    `json:"pageSize"`
	SearchTerm string `json:"searchTerm"`
}

// PagedResult is the list envelope: {items, totalCount, pageNumber, pageSize}.
type PagedResult struct {
	Items      interface{} `json:"items"`
	TotalCount int64       `json:"totalCount"`
	PageNumber int         `json:"pageNumber"`
	PageSize   int         `json:"pageSize"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	pageNumber, _ := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	searchTerm := c.Query("searchTerm")

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	return PaginationParams{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		SearchTerm: searchTerm,
	}
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	offset := (params.PageNumber - 1) * params.PageSize
	return db.Offset(offset).Limit(params.PageSize)
}

func CreatePagedResult(items interface{}, total int64, params PaginationParams) PagedResult {
	return PagedResult{
		Items:      items,
		TotalCount: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}
}
