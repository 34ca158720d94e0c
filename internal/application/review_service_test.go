package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

func newReviewService(t *testing.T) (*ReviewService, *fakeBootcampRepo, string) {
	t.Helper()
	bootcamps := newFakeBootcampRepo()
	b := &entity.Bootcamp{Name: "Devworks", UserID: "pub-1"}
	require.NoError(t, bootcamps.Create(context.Background(), b))
	svc := &ReviewService{Reviews: newFakeReviewRepo(), Bootcamps: bootcamps}
	return svc, bootcamps, b.ID
}

func reviewer() Principal { return Principal{ID: "u-1", Role: entity.RoleUser} }

func TestReviewCreateUpdatesAverageRating(t *testing.T) {
	svc, bootcamps, bootcampID := newReviewService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, reviewer(), bootcampID, ReviewInput{Title: "Great", Text: "t", Rating: 8})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Principal{ID: "u-2", Role: entity.RoleUser}, bootcampID, ReviewInput{Title: "OK", Text: "t", Rating: 6})
	require.NoError(t, err)

	b, err := bootcamps.GetByID(ctx, bootcampID)
	require.NoError(t, err)
	require.NotNil(t, b.AverageRating)
	assert.InDelta(t, 7.0, *b.AverageRating, 1e-9)
}

func TestReviewCreateRejectsPublishers(t *testing.T) {
	svc, _, bootcampID := newReviewService(t)

	_, err := svc.Create(context.Background(), Principal{ID: "pub-1", Role: entity.RolePublisher}, bootcampID,
		ReviewInput{Title: "Self praise", Text: "t", Rating: 10})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))
}

func TestReviewCreateRatingBounds(t *testing.T) {
	svc, _, bootcampID := newReviewService(t)

	for _, rating := range []int{0, 11, -3} {
		_, err := svc.Create(context.Background(), reviewer(), bootcampID, ReviewInput{Title: "x", Text: "t", Rating: rating})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.Validation))
	}
}

func TestReviewCreateUnknownBootcamp(t *testing.T) {
	svc, _, _ := newReviewService(t)

	_, err := svc.Create(context.Background(), reviewer(), "missing", ReviewInput{Title: "x", Text: "t", Rating: 5})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestReviewCreateDuplicateConflict(t *testing.T) {
	svc, _, bootcampID := newReviewService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, reviewer(), bootcampID, ReviewInput{Title: "First", Text: "t", Rating: 7})
	require.NoError(t, err)

	_, err = svc.Create(ctx, reviewer(), bootcampID, ReviewInput{Title: "Second", Text: "t", Rating: 9})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
}

func TestReviewUpdateOwnershipAndRecompute(t *testing.T) {
	svc, bootcamps, bootcampID := newReviewService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, reviewer(), bootcampID, ReviewInput{Title: "First", Text: "t", Rating: 4})
	require.NoError(t, err)

	rating := 10
	_, err = svc.Update(ctx, Principal{ID: "u-2", Role: entity.RoleUser}, r.ID, ReviewUpdate{Rating: &rating})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))

	_, err = svc.Update(ctx, reviewer(), r.ID, ReviewUpdate{Rating: &rating})
	require.NoError(t, err)

	b, err := bootcamps.GetByID(ctx, bootcampID)
	require.NoError(t, err)
	require.NotNil(t, b.AverageRating)
	assert.InDelta(t, 10.0, *b.AverageRating, 1e-9)
}

func TestReviewDeleteClearsAverageWhenLastReviewGoes(t *testing.T) {
	svc, bootcamps, bootcampID := newReviewService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, reviewer(), bootcampID, ReviewInput{Title: "Only one", Text: "t", Rating: 9})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, reviewer(), r.ID))

	b, err := bootcamps.GetByID(ctx, bootcampID)
	require.NoError(t, err)
	assert.Nil(t, b.AverageRating)
}
