package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	handlers "github.com/devtrail/bootcamp-api/internal/interface/http"
	"github.com/devtrail/bootcamp-api/internal/interface/middleware"
	"github.com/devtrail/bootcamp-api/pkg/helpers"
)

// BootcampModule registers the bootcamp routes plus the nested course
// and review collections under /bootcamps/:id.
type BootcampModule struct {
	Bootcamps *handlers.BootcampHandler
	Courses   *handlers.CourseHandler
	Reviews   *handlers.ReviewHandler
	JWT       *helpers.JWTManager
	Users     repository.UserRepository
}

func NewBootcampModule(b *handlers.BootcampHandler, c *handlers.CourseHandler, r *handlers.ReviewHandler, jwt *helpers.JWTManager, users repository.UserRepository) *BootcampModule {
	return &BootcampModule{Bootcamps: b, Courses: c, Reviews: r, JWT: jwt, Users: users}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	protect := middleware.Protect(m.JWT, m.Users)
	publishers := middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)
	reviewers := middleware.Authorize(entity.RoleUser, entity.RoleAdmin)

	rg.GET("/bootcamps", m.Bootcamps.List)
	rg.GET("/bootcamps/search", m.Bootcamps.Search)
	rg.GET("/bootcamps/radius/:zipcode/:distance", m.Bootcamps.Radius)
	rg.GET("/bootcamps/:id", m.Bootcamps.Get)
	rg.POST("/bootcamps", protect, publishers, m.Bootcamps.Create)
	rg.PUT("/bootcamps/:id", protect, publishers, m.Bootcamps.Update)
	rg.DELETE("/bootcamps/:id", protect, publishers, m.Bootcamps.Delete)
	rg.PUT("/bootcamps/:id/photo", protect, publishers, m.Bootcamps.UploadPhoto)

	rg.GET("/bootcamps/:id/courses", m.Courses.List)
	rg.POST("/bootcamps/:id/courses", protect, publishers, m.Courses.Create)

	rg.GET("/bootcamps/:id/reviews", m.Reviews.List)
	rg.POST("/bootcamps/:id/reviews", protect, reviewers, m.Reviews.Create)
}
