package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devtrail/bootcamp-api/internal/application"
	"github.com/devtrail/bootcamp-api/internal/interface/middleware"
	"github.com/devtrail/bootcamp-api/pkg/response"
	"github.com/devtrail/bootcamp-api/pkg/validation"
)

type ReviewHandler struct {
	Svc    *application.ReviewService
	Logger *logrus.Logger
}

func NewReviewHandler(svc *application.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

// List GET /api/v1/reviews and GET /api/v1/bootcamps/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	p := parseListParams(c)
	items, count, err := h.Svc.List(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Paged(c, http.StatusOK, projectFields(items, c.Query("select")), count, paginationFor(p, count))
}

// Get GET /api/v1/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	r, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, r)
}

type reviewRequest struct {
	Title  string `json:"title" binding:"required,max=100"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required,gte=1,lte=10"`
}

// Create POST /api/v1/bootcamps/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	r, err := h.Svc.Create(c.Request.Context(), p, c.Param("id"), application.ReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, r)
}

type reviewUpdateRequest struct {
	Title  *string `json:"title" binding:"omitempty,max=100"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating" binding:"omitempty,gte=1,lte=10"`
}

// Update PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	var req reviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	r, err := h.Svc.Update(c.Request.Context(), p, c.Param("id"), application.ReviewUpdate{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, r)
}

// Delete DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	if err := h.Svc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
