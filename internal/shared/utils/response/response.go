package response

import (
	"math"

	"github.com/gin-gonic/gin"
)

// StandardApiResponse is the envelope every endpoint returns.
type StandardApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"` // Validation or error details
}

// Pagination is the pagination block of list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"pages"`
}

// Page is the data payload of list responses.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPage builds a page, never returning a nil items slice.
func NewPage[T any](items []T, page, limit int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Pagination: NewPagination(page, limit, total),
	}
}

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}
}

// TotalPages calculates the page count for a result set
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, StandardApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, code int, message string, details interface{}) {
	c.JSON(code, StandardApiResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// AbortWithError writes an error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, code int, message string, details interface{}) {
	c.AbortWithStatusJSON(code, StandardApiResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}
