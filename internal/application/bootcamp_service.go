package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

// earthRadiusMiles converts a distance in miles to an angular radius.
const earthRadiusMiles = 3963.0

// Geocoder resolves a street address or postal code to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*entity.Location, error)
}

// PhotoStore persists uploaded bootcamp photos (local disk or GCS).
type PhotoStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) error
}

// BootcampIndex mirrors bootcamps into the search index. All calls are
// best-effort; a missing index never fails a write.
type BootcampIndex interface {
	Index(ctx context.Context, b *entity.Bootcamp) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

// BootcampService orchestrates the bootcamp lifecycle: validation,
// ownership checks, derived fields (slug, geocoded location), and the
// cross-entity side effects of deletion.
type BootcampService struct {
	Bootcamps repository.BootcampRepository
	Courses   repository.CourseRepository
	Reviews   repository.ReviewRepository
	Geo       Geocoder
	Photos    PhotoStore
	Search    BootcampIndex
	Logger    *logrus.Logger
	MaxUpload int64
}

type BootcampInput struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	Housing       bool
	JobAssistance bool
	JobGuarantee  bool
	AcceptGI      bool
}

func (s *BootcampService) List(ctx context.Context, p repository.ListParams) ([]entity.Bootcamp, int, error) {
	return s.Bootcamps.List(ctx, p)
}

// Get returns one bootcamp with its courses populated.
func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	courses, _, err := s.Courses.List(ctx, b.ID, repository.ListParams{Limit: 100})
	if err != nil {
		return nil, err
	}
	b.Courses = courses
	return b, nil
}

// Create derives the slug and geocoded location, then persists. A
// non-admin publisher may own at most one bootcamp.
func (s *BootcampService) Create(ctx context.Context, p Principal, in BootcampInput) (*entity.Bootcamp, error) {
	if err := requireRole(p, "create a bootcamp", entity.RolePublisher, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if p.Role != entity.RoleAdmin {
		if _, err := s.Bootcamps.GetByOwner(ctx, p.ID); err == nil {
			return nil, apperr.New(apperr.Conflict, "the user with id %s has already published a bootcamp", p.ID)
		} else if !apperr.IsKind(err, apperr.NotFound) {
			return nil, err
		}
	}

	loc, err := s.Geo.Geocode(ctx, in.Address)
	if err != nil {
		return nil, err
	}

	b := &entity.Bootcamp{
		Name:          in.Name,
		Slug:          slug.Make(in.Name),
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Location:      *loc,
		Careers:       in.Careers,
		Photo:         "no-photo.jpg",
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGI:      in.AcceptGI,
		UserID:        p.ID,
	}
	if err := s.Bootcamps.Create(ctx, b); err != nil {
		return nil, err
	}
	s.index(ctx, b)
	return b, nil
}

type BootcampUpdate struct {
	Name          *string
	Description   *string
	Website       *string
	Phone         *string
	Email         *string
	Address       *string
	Careers       []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGI      *bool
}

// Update applies the provided fields after an ownership check. A new
// name re-derives the slug; a new address re-geocodes the location.
func (s *BootcampService) Update(ctx context.Context, p Principal, id string, in BootcampUpdate) (*entity.Bootcamp, error) {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(p, b.UserID, "update this bootcamp"); err != nil {
		return nil, err
	}

	if in.Name != nil {
		b.Name = *in.Name
		b.Slug = slug.Make(b.Name)
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Website != nil {
		b.Website = *in.Website
	}
	if in.Phone != nil {
		b.Phone = *in.Phone
	}
	if in.Email != nil {
		b.Email = *in.Email
	}
	if in.Careers != nil {
		b.Careers = in.Careers
	}
	if in.Housing != nil {
		b.Housing = *in.Housing
	}
	if in.JobAssistance != nil {
		b.JobAssistance = *in.JobAssistance
	}
	if in.JobGuarantee != nil {
		b.JobGuarantee = *in.JobGuarantee
	}
	if in.AcceptGI != nil {
		b.AcceptGI = *in.AcceptGI
	}
	if in.Address != nil && *in.Address != b.Address {
		b.Address = *in.Address
		loc, err := s.Geo.Geocode(ctx, b.Address)
		if err != nil {
			return nil, err
		}
		b.Location = *loc
	}

	if err := s.Bootcamps.Update(ctx, b); err != nil {
		return nil, err
	}
	s.index(ctx, b)
	return b, nil
}

// Delete cascades: all courses belonging to the bootcamp are removed
// first, then the bootcamp itself. The steps run in order without a
// cross-document transaction; a crash in between leaves the bootcamp in
// place with its courses already gone.
func (s *BootcampService) Delete(ctx context.Context, p Principal, id string) (*entity.Bootcamp, error) {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(p, b.UserID, "delete this bootcamp"); err != nil {
		return nil, err
	}

	n, err := s.Courses.DeleteByBootcamp(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil && n > 0 {
		s.Logger.WithFields(logrus.Fields{"bootcamp_id": b.ID, "courses": n}).Info("cascade deleted courses")
	}
	if err := s.Bootcamps.Delete(ctx, b.ID); err != nil {
		return nil, err
	}
	if s.Search != nil {
		if err := s.Search.Delete(ctx, b.ID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("bootcamp_id", b.ID).Warn("search index delete failed")
		}
	}
	return b, nil
}

// WithinRadius geocodes a postal code and returns bootcamps inside the
// sphere with angular radius distanceMiles / 3963 (Earth radius in miles).
func (s *BootcampService) WithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]entity.Bootcamp, error) {
	if distanceMiles <= 0 {
		return nil, apperr.New(apperr.Validation, "distance must be a positive number of miles")
	}
	loc, err := s.Geo.Geocode(ctx, zipcode)
	if err != nil {
		return nil, err
	}
	radius := distanceMiles / earthRadiusMiles
	return s.Bootcamps.WithinRadius(ctx, loc.Longitude, loc.Latitude, radius)
}

// UploadPhoto validates and stores a bootcamp photo. The stored name is
// photo_<bootcamp id> plus the original extension.
func (s *BootcampService) UploadPhoto(ctx context.Context, p Principal, id, filename, contentType string, size int64, r io.Reader) (string, error) {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := requireOwner(p, b.UserID, "update this bootcamp"); err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperr.New(apperr.Validation, "please upload an image file")
	}
	if s.MaxUpload > 0 && size > s.MaxUpload {
		return "", apperr.New(apperr.Validation, "please upload an image less than %d bytes", s.MaxUpload)
	}

	name := "photo_" + b.ID + strings.ToLower(filepath.Ext(filename))
	if err := s.Photos.Save(ctx, name, contentType, r); err != nil {
		return "", apperr.Wrap(apperr.Internal, err, "problem with file upload")
	}
	if err := s.Bootcamps.UpdatePhoto(ctx, b.ID, name); err != nil {
		return "", err
	}
	return name, nil
}

// TextSearch queries the search index.
func (s *BootcampService) TextSearch(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Search == nil {
		return []map[string]any{}, nil
	}
	return s.Search.Search(ctx, q, size)
}

func (s *BootcampService) index(ctx context.Context, b *entity.Bootcamp) {
	if s.Search == nil {
		return
	}
	if err := s.Search.Index(ctx, b); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", b.ID).Warn("search index failed")
	}
}
