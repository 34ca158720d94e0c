package router

import (
	"github.com/devtrail/bootcamp-api/internal/application"
	"github.com/devtrail/bootcamp-api/internal/container"
	"github.com/devtrail/bootcamp-api/internal/infrastructure/geocode"
	pginfra "github.com/devtrail/bootcamp-api/internal/infrastructure/postgres"
	"github.com/devtrail/bootcamp-api/internal/infrastructure/search"
	"github.com/devtrail/bootcamp-api/internal/infrastructure/storage"
	handlers "github.com/devtrail/bootcamp-api/internal/interface/http"
	"github.com/devtrail/bootcamp-api/internal/router/modules"
	"github.com/devtrail/bootcamp-api/pkg/helpers"
)

// InitModules wires repositories, services and handlers from the
// container singletons and registers every feature module.
// Called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	bootcamps := pginfra.NewBootcampRepository(pool)
	courses := pginfra.NewCourseRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)

	geocoder := geocode.NewMapQuest(cfg.GeocoderURL, cfg.GeocoderKey, container.GetRedis(), logger)

	var photos application.PhotoStore = storage.NewDiskStore(cfg.UploadPath)
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		photos = storage.NewGCSStore(gcs, cfg.GCSBucket)
	}

	var index application.BootcampIndex
	if es := container.GetES(); es != nil {
		index = search.NewESBootcampIndex(es, cfg.ESBootcampsIndex, logger)
	}

	authSvc := &application.AuthService{
		Users:    users,
		JWT:      jwt,
		Logger:   logger,
		ResetURL: cfg.ResetPasswordURL,
	}
	if pub := container.GetRabbitPub(); pub != nil {
		authSvc.Mail = pub
	}

	bootcampSvc := &application.BootcampService{
		Bootcamps: bootcamps,
		Courses:   courses,
		Reviews:   reviews,
		Geo:       geocoder,
		Photos:    photos,
		Search:    index,
		Logger:    logger,
		MaxUpload: cfg.MaxUploadSize,
	}
	courseSvc := &application.CourseService{Courses: courses, Bootcamps: bootcamps, Logger: logger}
	reviewSvc := &application.ReviewService{Reviews: reviews, Bootcamps: bootcamps, Logger: logger}
	userSvc := &application.UserService{Users: users}

	cookie := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	authHandler := handlers.NewAuthHandler(authSvc, cookie, logger)
	bootcampHandler := handlers.NewBootcampHandler(bootcampSvc, logger)
	courseHandler := handlers.NewCourseHandler(courseSvc, logger)
	reviewHandler := handlers.NewReviewHandler(reviewSvc, logger)
	userHandler := handlers.NewUserHandler(userSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, jwt, users))
	r.Add(modules.NewBootcampModule(bootcampHandler, courseHandler, reviewHandler, jwt, users))
	r.Add(modules.NewCourseModule(courseHandler, jwt, users))
	r.Add(modules.NewReviewModule(reviewHandler, jwt, users))
	r.Add(modules.NewUserModule(userHandler, jwt, users))
}
