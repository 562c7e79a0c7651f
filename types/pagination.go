package types

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// AllowedPageSizes are the page sizes the dashboard list views offer.
var AllowedPageSizes = []int{10, 20, 50, 100}

const defaultPageSize = 20

// PaginatedResponse wraps a page of rows (leads, calls, activities) with
// the metadata the dashboard needs to render pagers.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		PageSize   int `json:"pageSize"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

// PaginationHelper carries the sanitized page window for a list query.
// Offset is precomputed for direct use in LIMIT/OFFSET clauses.
type PaginationHelper struct {
	Page     int
	PageSize int
	Offset   int
}

// NewPaginationHelper sanitizes raw page and pageSize values. A size not
// in AllowedPageSizes is rounded down to the nearest allowed one, so a
// client can never request an arbitrarily large page.
func NewPaginationHelper(page, pageSize int) *PaginationHelper {
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	pageSize = clampPageSize(pageSize)

	return &PaginationHelper{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

func clampPageSize(pageSize int) int {
	for _, size := range AllowedPageSizes {
		if pageSize == size {
			return pageSize
		}
	}
	for i := len(AllowedPageSizes) - 1; i >= 0; i-- {
		if AllowedPageSizes[i] <= pageSize {
			return AllowedPageSizes[i]
		}
	}
	return AllowedPageSizes[0]
}

// ParsePaginationParams reads page and pageSize from the query string.
// Missing or unparsable values fall back to page 1, size 20.
func ParsePaginationParams(c *gin.Context) *PaginationHelper {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	return NewPaginationHelper(page, pageSize)
}

// BuildResponse assembles the page envelope from the fetched rows and
// the total row count of the underlying query.
func (p *PaginationHelper) BuildResponse(data interface{}, total int) PaginatedResponse {
	resp := PaginatedResponse{Data: data}
	resp.Pagination.Page = p.Page
	resp.Pagination.PageSize = p.PageSize
	resp.Pagination.Total = total
	resp.Pagination.TotalPages = (total + p.PageSize - 1) / p.PageSize
	return resp
}
