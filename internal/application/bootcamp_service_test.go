package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

func newBootcampService() (*BootcampService, *fakeBootcampRepo, *fakeCourseRepo, *fakeGeocoder, *fakePhotoStore) {
	bootcamps := newFakeBootcampRepo()
	courses := newFakeCourseRepo()
	geo := &fakeGeocoder{loc: entity.Location{Longitude: -71.1, Latitude: 42.35, City: "Boston"}}
	photos := newFakePhotoStore()
	svc := &BootcampService{
		Bootcamps: bootcamps,
		Courses:   courses,
		Reviews:   newFakeReviewRepo(),
		Geo:       geo,
		Photos:    photos,
		MaxUpload: 1_000_000,
	}
	return svc, bootcamps, courses, geo, photos
}

func publisher() Principal { return Principal{ID: "pub-1", Role: entity.RolePublisher} }
func admin() Principal     { return Principal{ID: "adm-1", Role: entity.RoleAdmin} }

func TestBootcampCreateDerivesSlugAndLocation(t *testing.T) {
	svc, _, _, geo, _ := newBootcampService()

	b, err := svc.Create(context.Background(), publisher(), BootcampInput{
		Name:        "Devworks Bootcamp",
		Description: "full stack",
		Address:     "233 Bay State Rd Boston MA 02215",
		Careers:     []string{"Web Development"},
	})
	require.NoError(t, err)

	assert.Equal(t, "devworks-bootcamp", b.Slug)
	assert.Equal(t, "Boston", b.Location.City)
	assert.Equal(t, "no-photo.jpg", b.Photo)
	assert.Equal(t, "pub-1", b.UserID)
	assert.Equal(t, 1, geo.calls)
}

func TestBootcampCreateOnePerPublisher(t *testing.T) {
	svc, _, _, _, _ := newBootcampService()
	ctx := context.Background()

	_, err := svc.Create(ctx, publisher(), BootcampInput{Name: "First", Description: "d", Address: "a"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, publisher(), BootcampInput{Name: "Second", Description: "d", Address: "a"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
}

func TestBootcampCreateAdminMayOwnSeveral(t *testing.T) {
	svc, _, _, _, _ := newBootcampService()
	ctx := context.Background()

	_, err := svc.Create(ctx, admin(), BootcampInput{Name: "First", Description: "d", Address: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin(), BootcampInput{Name: "Second", Description: "d", Address: "a"})
	require.NoError(t, err)
}

func TestBootcampCreateRequiresPublisherRole(t *testing.T) {
	svc, _, _, _, _ := newBootcampService()

	_, err := svc.Create(context.Background(), Principal{ID: "u-1", Role: entity.RoleUser}, BootcampInput{
		Name: "Nope", Description: "d", Address: "a",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))
}

func TestBootcampUpdateOwnership(t *testing.T) {
	svc, _, _, _, _ := newBootcampService()
	ctx := context.Background()

	b, err := svc.Create(ctx, publisher(), BootcampInput{Name: "Devworks", Description: "d", Address: "a"})
	require.NoError(t, err)

	other := Principal{ID: "pub-2", Role: entity.RolePublisher}
	name := "Hijacked"
	_, err = svc.Update(ctx, other, b.ID, BootcampUpdate{Name: &name})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))

	// Admin may update anyone's bootcamp; a new name re-derives the slug.
	updated, err := svc.Update(ctx, admin(), b.ID, BootcampUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "hijacked", updated.Slug)
}

func TestBootcampUpdateFlagFields(t *testing.T) {
	svc, _, _, _, _ := newBootcampService()
	ctx := context.Background()

	b, err := svc.Create(ctx, publisher(), BootcampInput{Name: "Devworks", Description: "d", Address: "a"})
	require.NoError(t, err)
	require.False(t, b.AcceptGI)

	yes := true
	updated, err := svc.Update(ctx, publisher(), b.ID, BootcampUpdate{Housing: &yes, AcceptGI: &yes})
	require.NoError(t, err)
	assert.True(t, updated.Housing)
	assert.True(t, updated.AcceptGI)

	// Absent pointers leave flags untouched.
	desc := "new"
	updated, err = svc.Update(ctx, publisher(), b.ID, BootcampUpdate{Description: &desc})
	require.NoError(t, err)
	assert.True(t, updated.AcceptGI)
}

func TestBootcampUpdateReGeocodesOnAddressChange(t *testing.T) {
	svc, _, _, geo, _ := newBootcampService()
	ctx := context.Background()

	b, err := svc.Create(ctx, publisher(), BootcampInput{Name: "Devworks", Description: "d", Address: "old address"})
	require.NoError(t, err)
	require.Equal(t, 1, geo.calls)

	desc := "new description"
	_, err = svc.Update(ctx, publisher(), b.ID, BootcampUpdate{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, 1, geo.calls, "no re-geocode without an address change")

	addr := "new address"
	updated, err := svc.Update(ctx, publisher(), b.ID, BootcampUpdate{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, 2, geo.calls)
	assert.Equal(t, "new address", updated.Location.FormattedAddress)
}

func TestBootcampDeleteCascadesCourses(t *testing.T) {
	svc, bootcamps, courses, _, _ := newBootcampService()
	ctx := context.Background()

	b, err := svc.Create(ctx, publisher(), BootcampInput{Name: "Devworks", Description: "d", Address: "a"})
	require.NoError(t, err)

	for _, title := range []string{"Front End", "Back End"} {
		require.NoError(t, courses.Create(ctx, &entity.Course{Title: title, BootcampID: b.ID, UserID: "pub-1"}))
	}
	require.NoError(t, courses.Create(ctx, &entity.Course{Title: "Elsewhere", BootcampID: "other", UserID: "pub-2"}))

	_, err = svc.Delete(ctx, publisher(), b.ID)
	require.NoError(t, err)

	_, err = bootcamps.GetByID(ctx, b.ID)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))

	left, n, err := courses.List(ctx, "", repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, n, "courses of other bootcamps survive")
	assert.Equal(t, "Elsewhere", left[0].Title)
}

func TestWithinRadiusConvertsMilesToAngularRadius(t *testing.T) {
	svc, bootcamps, _, _, _ := newBootcampService()

	_, err := svc.WithinRadius(context.Background(), "02215", 10)
	require.NoError(t, err)

	assert.InDelta(t, 10.0/3963.0, bootcamps.radius, 1e-12)
	assert.InDelta(t, -71.1, bootcamps.radiusLng, 1e-9)
	assert.InDelta(t, 42.35, bootcamps.radiusLat, 1e-9)
}

func TestWithinRadiusRejectsNonPositiveDistance(t *testing.T) {
	svc, _, _, _, _ := newBootcampService()

	for _, d := range []float64{0, -5} {
		_, err := svc.WithinRadius(context.Background(), "02215", d)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.Validation))
	}
}

func TestUploadPhoto(t *testing.T) {
	svc, bootcamps, _, _, photos := newBootcampService()
	ctx := context.Background()

	b, err := svc.Create(ctx, publisher(), BootcampInput{Name: "Devworks", Description: "d", Address: "a"})
	require.NoError(t, err)

	body := strings.NewReader("jpeg bytes")
	name, err := svc.UploadPhoto(ctx, publisher(), b.ID, "Photo.JPG", "image/jpeg", int64(body.Len()), body)
	require.NoError(t, err)

	assert.Equal(t, "photo_"+b.ID+".jpg", name)
	assert.Contains(t, photos.saved, name)

	stored, err := bootcamps.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, name, stored.Photo)
}

func TestUploadPhotoRejectsNonImage(t *testing.T) {
	svc, _, _, _, _ := newBootcampService()
	ctx := context.Background()

	b, err := svc.Create(ctx, publisher(), BootcampInput{Name: "Devworks", Description: "d", Address: "a"})
	require.NoError(t, err)

	_, err = svc.UploadPhoto(ctx, publisher(), b.ID, "notes.pdf", "application/pdf", 10, strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestUploadPhotoRejectsOversized(t *testing.T) {
	svc, _, _, _, _ := newBootcampService()
	svc.MaxUpload = 4
	ctx := context.Background()

	b, err := svc.Create(ctx, publisher(), BootcampInput{Name: "Devworks", Description: "d", Address: "a"})
	require.NoError(t, err)

	_, err = svc.UploadPhoto(ctx, publisher(), b.ID, "big.png", "image/png", 400, strings.NewReader("xxxx"))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestUploadPhotoRequiresOwnership(t *testing.T) {
	svc, _, _, _, _ := newBootcampService()
	ctx := context.Background()

	b, err := svc.Create(ctx, publisher(), BootcampInput{Name: "Devworks", Description: "d", Address: "a"})
	require.NoError(t, err)

	other := Principal{ID: "pub-2", Role: entity.RolePublisher}
	_, err = svc.UploadPhoto(ctx, other, b.ID, "p.jpg", "image/jpeg", 10, strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))
}
