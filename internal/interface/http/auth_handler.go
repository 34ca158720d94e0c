package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devtrail/bootcamp-api/internal/application"
	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/interface/middleware"
	"github.com/devtrail/bootcamp-api/pkg/helpers"
	"github.com/devtrail/bootcamp-api/pkg/response"
	"github.com/devtrail/bootcamp-api/pkg/validation"
)

type AuthHandler struct {
	Auth   *application.AuthService
	Cookie *helpers.CookieManager
	Logger *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, cookie *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookie: cookie, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,oneof=user publisher"`
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, entity.Role(req.Role))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookie.SetToken(c, token, exp)
	response.OK(c, http.StatusCreated, gin.H{"token": token, "user": u})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "please provide an email and password", validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookie.SetToken(c, token, exp)
	response.OK(c, http.StatusOK, gin.H{"token": token, "user": u})
}

// Logout GET /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookie.Clear(c)
	response.OK(c, http.StatusOK, gin.H{})
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	u, err := h.Auth.Me(c.Request.Context(), p.ID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

type updateDetailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateDetails PUT /api/v1/auth/updatedetails
func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	var req updateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	u, err := h.Auth.UpdateDetails(c.Request.Context(), p.ID, req.Name, req.Email)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

// UpdatePassword PUT /api/v1/auth/updatepassword
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	token, exp, err := h.Auth.UpdatePassword(c.Request.Context(), p.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookie.SetToken(c, token, exp)
	response.OK(c, http.StatusOK, gin.H{"token": token})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword POST /api/v1/auth/forgotpassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "email sent"})
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,pwd"`
}

// ResetPassword PUT /api/v1/auth/resetpassword/:resettoken
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Auth.ResetPassword(c.Request.Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookie.SetToken(c, token, exp)
	response.OK(c, http.StatusOK, gin.H{"token": token, "user": u})
}
