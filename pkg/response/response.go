package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

// Envelope is the uniform JSON body for every API response.
type Envelope[T any] struct {
	Success    bool        `json:"success"`
	Data       T           `json:"data,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
	Details    any         `json:"details,omitempty"`
}

// PageRef points at an adjacent page of a collection.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev page refs; either side is omitted at
// the collection's edge.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// NewPagination computes the next/prev refs for page (1-based) of a
// collection with total rows at limit rows per page. Returns nil when
// there is a single page.
func NewPagination(page, limit, total int) *Pagination {
	if page < 1 {
		page = 1
	}
	pg := &Pagination{}
	if page*limit < total {
		pg.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		pg.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	if pg.Next == nil && pg.Prev == nil {
		return nil
	}
	return pg
}

func OK[T any](c *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope[T]{Success: true, Data: data})
}

// List is OK plus a count field for collection endpoints.
func List[T any](c *gin.Context, status int, data T, count int) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope[T]{Success: true, Data: data, Count: &count})
}

// Paged is List plus pagination metadata for the advanced list
// endpoints.
func Paged[T any](c *gin.Context, status int, data T, count int, pg *Pagination) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope[T]{Success: true, Data: data, Count: &count, Pagination: pg})
}

func Fail(c *gin.Context, status int, msg string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, Envelope[any]{Success: false, Error: msg, Details: details})
}

// AbortFail writes the error envelope and aborts the handler chain.
// Middleware uses this; handlers use Fail/FromError.
func AbortFail(c *gin.Context, status int, msg string, details any) {
	c.AbortWithStatusJSON(status, Envelope[any]{Success: false, Error: msg, Details: details})
}

// FromError maps a service error onto the envelope using the apperr
// taxonomy. Unexpected (internal) errors are logged with the request id
// and surfaced as a generic message.
func FromError(c *gin.Context, logger *logrus.Logger, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal && logger != nil {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
			"error":      err.Error(),
		}).Error("request failed")
	}
	Fail(c, kind.HTTPStatus(), apperr.Message(err), apperr.Details(err))
}
