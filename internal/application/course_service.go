package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
)

// CourseService orchestrates the course lifecycle. Creating a course
// requires owning the parent bootcamp; updating or deleting one checks
// the course's own owner. Course writes refresh the parent bootcamp's
// average cost.
type CourseService struct {
	Courses   repository.CourseRepository
	Bootcamps repository.BootcampRepository
	Logger    *logrus.Logger
}

type CourseInput struct {
	Title                string
	Description          string
	Weeks                int
	Tuition              float64
	MinimumSkill         string
	ScholarshipAvailable bool
}

func (s *CourseService) List(ctx context.Context, bootcampID string, p repository.ListParams) ([]entity.Course, int, error) {
	return s.Courses.List(ctx, bootcampID, p)
}

func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	return s.Courses.GetByID(ctx, id)
}

func (s *CourseService) Create(ctx context.Context, p Principal, bootcampID string, in CourseInput) (*entity.Course, error) {
	b, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(p, b.UserID, "add a course to bootcamp "+b.ID); err != nil {
		return nil, err
	}

	c := &entity.Course{
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
		BootcampID:           b.ID,
		UserID:               p.ID,
	}
	if err := s.Courses.Create(ctx, c); err != nil {
		return nil, err
	}
	s.recomputeAverageCost(ctx, b.ID)
	return c, nil
}

type CourseUpdate struct {
	Title                *string
	Description          *string
	Weeks                *int
	Tuition              *float64
	MinimumSkill         *string
	ScholarshipAvailable *bool
}

func (s *CourseService) Update(ctx context.Context, p Principal, id string, in CourseUpdate) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(p, c.UserID, "update course "+c.ID); err != nil {
		return nil, err
	}

	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Weeks != nil {
		c.Weeks = *in.Weeks
	}
	if in.Tuition != nil {
		c.Tuition = *in.Tuition
	}
	if in.MinimumSkill != nil {
		c.MinimumSkill = *in.MinimumSkill
	}
	if in.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *in.ScholarshipAvailable
	}

	if err := s.Courses.Update(ctx, c); err != nil {
		return nil, err
	}
	s.recomputeAverageCost(ctx, c.BootcampID)
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, p Principal, id string) error {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(p, c.UserID, "delete course "+c.ID); err != nil {
		return err
	}
	if err := s.Courses.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.recomputeAverageCost(ctx, c.BootcampID)
	return nil
}

// recomputeAverageCost writes the mean tuition of a bootcamp's courses
// back to the bootcamp. Best-effort: failures are logged, never
// propagated, so a stale average cannot fail the course mutation.
func (s *CourseService) recomputeAverageCost(ctx context.Context, bootcampID string) {
	avg, err := s.Courses.AverageTuition(ctx, bootcampID)
	if err == nil {
		err = s.Bootcamps.UpdateAverageCost(ctx, bootcampID, avg)
	}
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", bootcampID).Error("average cost update failed")
	}
}
