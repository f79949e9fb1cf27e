package response

import (
	"math"
	"time"

	"github.com/gin-gonic/gin"
)

type Pagination struct {
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	TotalItems      int64 `json:"totalItems"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

type APIResponse struct {
	Success    bool         `json:"success"`
	Data       interface{}  `json:"data"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	Error      *ErrorDetail `json:"error"`
	Message    string       `json:"message"`
	RequestID  string       `json:"requestId"`
	Timestamp  string       `json:"timestamp"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func NewPaginationMeta(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		Page:            page,
		PageSize:        limit,
		TotalItems:      total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// Payload builds the success envelope without writing it, for callers that
// need the rendered body (idempotent replays serve these exact bytes).
func Payload(c *gin.Context, data interface{}, pag *Pagination) APIResponse {
	return APIResponse{
		Success:    true,
		Data:       data,
		Pagination: pag,
		RequestID:  c.GetString("X-Request-ID"),
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}

func Success(c *gin.Context, status int, data interface{}, pag *Pagination) {
	c.JSON(status, Payload(c, data, pag))
}

func Error(c *gin.Context, status int, errCode string, message string, details interface{}) {
	requestId := c.GetString("X-Request-ID")
	c.JSON(status, APIResponse{
		Success: false,
		Data:    nil,
		Error: &ErrorDetail{
			Code:    errCode,
			Message: message,
			Details: details,
		},
		Message:   message,
		RequestID: requestId,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
