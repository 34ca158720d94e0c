package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devtrail/bootcamp-api/internal/application"
	"github.com/devtrail/bootcamp-api/internal/interface/middleware"
	"github.com/devtrail/bootcamp-api/pkg/response"
	"github.com/devtrail/bootcamp-api/pkg/validation"
)

type BootcampHandler struct {
	Svc    *application.BootcampService
	Logger *logrus.Logger
}

func NewBootcampHandler(svc *application.BootcampService, logger *logrus.Logger) *BootcampHandler {
	return &BootcampHandler{Svc: svc, Logger: logger}
}

// List GET /api/v1/bootcamps
func (h *BootcampHandler) List(c *gin.Context) {
	p := parseListParams(c)
	items, count, err := h.Svc.List(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Paged(c, http.StatusOK, projectFields(items, c.Query("select")), count, paginationFor(p, count))
}

// Get GET /api/v1/bootcamps/:id
func (h *BootcampHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, b)
}

type bootcampRequest struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description" binding:"required,max=500"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address" binding:"required"`
	Careers       []string `json:"careers" binding:"required,dive,career"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"job_assistance"`
	JobGuarantee  bool     `json:"job_guarantee"`
	AcceptGI      bool     `json:"accept_gi"`
}

// Create POST /api/v1/bootcamps
func (h *BootcampHandler) Create(c *gin.Context) {
	var req bootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	b, err := h.Svc.Create(c.Request.Context(), p, application.BootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGI:      req.AcceptGI,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, b)
}

type bootcampUpdateRequest struct {
	Name          *string  `json:"name" binding:"omitempty,max=50"`
	Description   *string  `json:"description" binding:"omitempty,max=500"`
	Website       *string  `json:"website" binding:"omitempty,url"`
	Phone         *string  `json:"phone" binding:"omitempty,max=20"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Address       *string  `json:"address"`
	Careers       []string `json:"careers" binding:"omitempty,dive,career"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"job_assistance"`
	JobGuarantee  *bool    `json:"job_guarantee"`
	AcceptGI      *bool    `json:"accept_gi"`
}

// Update PUT /api/v1/bootcamps/:id
func (h *BootcampHandler) Update(c *gin.Context) {
	var req bootcampUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	b, err := h.Svc.Update(c.Request.Context(), p, c.Param("id"), application.BootcampUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGI:      req.AcceptGI,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, b)
}

// Delete DELETE /api/v1/bootcamps/:id
func (h *BootcampHandler) Delete(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	b, err := h.Svc.Delete(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, b)
}

// Radius GET /api/v1/bootcamps/radius/:zipcode/:distance
func (h *BootcampHandler) Radius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "distance must be a number of miles", nil)
		return
	}
	items, err := h.Svc.WithinRadius(c.Request.Context(), c.Param("zipcode"), distance)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.List(c, http.StatusOK, items, len(items))
}

// UploadPhoto PUT /api/v1/bootcamps/:id/photo
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "please upload a file", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "please upload a file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	p, _ := middleware.PrincipalFrom(c)
	name, err := h.Svc.UploadPhoto(c.Request.Context(), p, c.Param("id"),
		file.Filename, file.Header.Get("Content-Type"), file.Size, src)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"photo": name})
}

// Search GET /api/v1/bootcamps/search?q=...&size=...
func (h *BootcampHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.TextSearch(c.Request.Context(), q, size)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.List(c, http.StatusOK, hits, len(hits))
}
