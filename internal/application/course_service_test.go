package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

func newCourseService(t *testing.T) (*CourseService, *fakeBootcampRepo, string) {
	t.Helper()
	bootcamps := newFakeBootcampRepo()
	b := &entity.Bootcamp{Name: "Devworks", UserID: "pub-1"}
	require.NoError(t, bootcamps.Create(context.Background(), b))
	svc := &CourseService{Courses: newFakeCourseRepo(), Bootcamps: bootcamps}
	return svc, bootcamps, b.ID
}

func TestCourseCreateRequiresBootcampOwnership(t *testing.T) {
	svc, _, bootcampID := newCourseService(t)
	ctx := context.Background()

	other := Principal{ID: "pub-2", Role: entity.RolePublisher}
	_, err := svc.Create(ctx, other, bootcampID, CourseInput{Title: "Front End", Description: "d", Weeks: 8, Tuition: 8000, MinimumSkill: "beginner"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))

	c, err := svc.Create(ctx, publisher(), bootcampID, CourseInput{Title: "Front End", Description: "d", Weeks: 8, Tuition: 8000, MinimumSkill: "beginner"})
	require.NoError(t, err)
	assert.Equal(t, bootcampID, c.BootcampID)
	assert.Equal(t, "pub-1", c.UserID)
}

func TestCourseCreateUnknownBootcamp(t *testing.T) {
	svc, _, _ := newCourseService(t)

	_, err := svc.Create(context.Background(), publisher(), "missing", CourseInput{Title: "x", Description: "d"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestCourseWritesMaintainAverageCost(t *testing.T) {
	svc, bootcamps, bootcampID := newCourseService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, publisher(), bootcampID, CourseInput{Title: "A", Description: "d", Weeks: 8, Tuition: 8000, MinimumSkill: "beginner"})
	require.NoError(t, err)
	c, err := svc.Create(ctx, publisher(), bootcampID, CourseInput{Title: "B", Description: "d", Weeks: 12, Tuition: 10000, MinimumSkill: "intermediate"})
	require.NoError(t, err)

	b, err := bootcamps.GetByID(ctx, bootcampID)
	require.NoError(t, err)
	require.NotNil(t, b.AverageCost)
	assert.InDelta(t, 9000.0, *b.AverageCost, 1e-9)

	require.NoError(t, svc.Delete(ctx, publisher(), c.ID))
	b, err = bootcamps.GetByID(ctx, bootcampID)
	require.NoError(t, err)
	require.NotNil(t, b.AverageCost)
	assert.InDelta(t, 8000.0, *b.AverageCost, 1e-9)
}

func TestCourseAverageCostFailureDoesNotFailWrite(t *testing.T) {
	svc, bootcamps, bootcampID := newCourseService(t)
	bootcamps.avgCostErr = true

	_, err := svc.Create(context.Background(), publisher(), bootcampID, CourseInput{Title: "A", Description: "d", Weeks: 8, Tuition: 8000, MinimumSkill: "beginner"})
	assert.NoError(t, err, "a failed average update must not fail the course write")
}

func TestCourseUpdateChecksCourseOwner(t *testing.T) {
	svc, _, bootcampID := newCourseService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, publisher(), bootcampID, CourseInput{Title: "A", Description: "d", Weeks: 8, Tuition: 8000, MinimumSkill: "beginner"})
	require.NoError(t, err)

	tuition := 9000.0
	other := Principal{ID: "pub-2", Role: entity.RolePublisher}
	_, err = svc.Update(ctx, other, c.ID, CourseUpdate{Tuition: &tuition})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))

	updated, err := svc.Update(ctx, admin(), c.ID, CourseUpdate{Tuition: &tuition})
	require.NoError(t, err)
	assert.InDelta(t, 9000.0, updated.Tuition, 1e-9)
}
