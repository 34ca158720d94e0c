package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	handlers "github.com/devtrail/bootcamp-api/internal/interface/http"
	"github.com/devtrail/bootcamp-api/internal/interface/middleware"
	"github.com/devtrail/bootcamp-api/pkg/helpers"
)

type ReviewModule struct {
	Handler *handlers.ReviewHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewReviewModule(h *handlers.ReviewHandler, jwt *helpers.JWTManager, users repository.UserRepository) *ReviewModule {
	return &ReviewModule{Handler: h, JWT: jwt, Users: users}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	protect := middleware.Protect(m.JWT, m.Users)
	reviewers := middleware.Authorize(entity.RoleUser, entity.RoleAdmin)

	rg.GET("/reviews", m.Handler.List)
	rg.GET("/reviews/:id", m.Handler.Get)
	rg.PUT("/reviews/:id", protect, reviewers, m.Handler.Update)
	rg.DELETE("/reviews/:id", protect, reviewers, m.Handler.Delete)
}
