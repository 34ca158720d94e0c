package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

// ReviewService orchestrates the review lifecycle. Every review write
// triggers a recomputation of the parent bootcamp's average rating.
type ReviewService struct {
	Reviews   repository.ReviewRepository
	Bootcamps repository.BootcampRepository
	Logger    *logrus.Logger
}

type ReviewInput struct {
	Title  string
	Text   string
	Rating int
}

func (s *ReviewService) List(ctx context.Context, bootcampID string, p repository.ListParams) ([]entity.Review, int, error) {
	return s.Reviews.List(ctx, bootcampID, p)
}

func (s *ReviewService) Get(ctx context.Context, id string) (*entity.Review, error) {
	return s.Reviews.GetByID(ctx, id)
}

// Create adds a review for an existing bootcamp. The store's uniqueness
// constraint rejects a second review by the same user for the same
// bootcamp.
func (s *ReviewService) Create(ctx context.Context, p Principal, bootcampID string, in ReviewInput) (*entity.Review, error) {
	if err := requireRole(p, "add a review", entity.RoleUser, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if in.Rating < 1 || in.Rating > 10 {
		return nil, apperr.New(apperr.Validation, "rating must be between 1 and 10")
	}
	b, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}

	r := &entity.Review{
		Title:      in.Title,
		Text:       in.Text,
		Rating:     in.Rating,
		BootcampID: b.ID,
		UserID:     p.ID,
	}
	if err := s.Reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	s.recomputeAverageRating(ctx, b.ID)
	return r, nil
}

type ReviewUpdate struct {
	Title  *string
	Text   *string
	Rating *int
}

func (s *ReviewService) Update(ctx context.Context, p Principal, id string, in ReviewUpdate) (*entity.Review, error) {
	r, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(p, r.UserID, "update review "+r.ID); err != nil {
		return nil, err
	}

	if in.Title != nil {
		r.Title = *in.Title
	}
	if in.Text != nil {
		r.Text = *in.Text
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 10 {
			return nil, apperr.New(apperr.Validation, "rating must be between 1 and 10")
		}
		r.Rating = *in.Rating
	}

	if err := s.Reviews.Update(ctx, r); err != nil {
		return nil, err
	}
	s.recomputeAverageRating(ctx, r.BootcampID)
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, p Principal, id string) error {
	r, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(p, r.UserID, "delete review "+r.ID); err != nil {
		return err
	}
	if err := s.Reviews.Delete(ctx, r.ID); err != nil {
		return err
	}
	s.recomputeAverageRating(ctx, r.BootcampID)
	return nil
}

// recomputeAverageRating writes the arithmetic mean of a bootcamp's
// review ratings back to the bootcamp; with no reviews the field is
// cleared. Best-effort: a failed write is logged, not propagated, since
// a stale average is preferred over failing the review mutation.
func (s *ReviewService) recomputeAverageRating(ctx context.Context, bootcampID string) {
	avg, err := s.Reviews.AverageRating(ctx, bootcampID)
	if err == nil {
		err = s.Bootcamps.UpdateAverageRating(ctx, bootcampID, avg)
	}
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", bootcampID).Error("average rating update failed")
	}
}
