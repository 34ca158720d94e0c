package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	handlers "github.com/devtrail/bootcamp-api/internal/interface/http"
	"github.com/devtrail/bootcamp-api/internal/interface/middleware"
	"github.com/devtrail/bootcamp-api/pkg/helpers"
)

type CourseModule struct {
	Handler *handlers.CourseHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewCourseModule(h *handlers.CourseHandler, jwt *helpers.JWTManager, users repository.UserRepository) *CourseModule {
	return &CourseModule{Handler: h, JWT: jwt, Users: users}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	protect := middleware.Protect(m.JWT, m.Users)
	publishers := middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)

	rg.GET("/courses", m.Handler.List)
	rg.GET("/courses/:id", m.Handler.Get)
	rg.PUT("/courses/:id", protect, publishers, m.Handler.Update)
	rg.DELETE("/courses/:id", protect, publishers, m.Handler.Delete)
}
