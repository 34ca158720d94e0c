package repository

import (
	"context"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
)

// Filter is one predicate applied to a list query. Op is one of
// eq, gt, gte, lt, lte, in.
type Filter struct {
	Field string
	Op    string
	Value any
}

// ListParams carries the select/sort/page/limit options accepted by
// collection endpoints.
type ListParams struct {
	Filters []Filter
	Sort    string // comma-separated columns, "-" prefix for descending
	Page    int
	Limit   int
}

// Offset returns the row offset for the current page.
func (p ListParams) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.PageSize()
}

// PageSize returns the effective limit, defaulting to 25 and capping at 100.
func (p ListParams) PageSize() int {
	if p.Limit <= 0 {
		return 25
	}
	if p.Limit > 100 {
		return 100
	}
	return p.Limit
}

// UserRepository is the store adapter for users. Email uniqueness is
// enforced here and surfaced as a Conflict error.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByResetToken(ctx context.Context, hashedToken string) (*entity.User, error)
	List(ctx context.Context, p ListParams) ([]entity.User, int, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}

// BootcampRepository is the store adapter for bootcamps, including the
// spherical-containment query used by radius search. Name uniqueness is
// enforced here.
type BootcampRepository interface {
	Create(ctx context.Context, b *entity.Bootcamp) error
	GetByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	GetByOwner(ctx context.Context, userID string) (*entity.Bootcamp, error)
	List(ctx context.Context, p ListParams) ([]entity.Bootcamp, int, error)
	Update(ctx context.Context, b *entity.Bootcamp) error
	Delete(ctx context.Context, id string) error
	// WithinRadius returns bootcamps whose location falls inside the
	// sphere centred at (lng, lat) with the given angular radius in
	// radians.
	WithinRadius(ctx context.Context, lng, lat, radius float64) ([]entity.Bootcamp, error)
	UpdateAverageRating(ctx context.Context, id string, avg *float64) error
	UpdateAverageCost(ctx context.Context, id string, avg *float64) error
	UpdatePhoto(ctx context.Context, id, filename string) error
}

// CourseRepository is the store adapter for courses. Reads populate the
// parent bootcamp's name and description.
type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	// List returns courses, optionally scoped to one bootcamp when
	// bootcampID is non-empty.
	List(ctx context.Context, bootcampID string, p ListParams) ([]entity.Course, int, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
	DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error)
	// AverageTuition returns the mean tuition across a bootcamp's
	// courses, or nil when it has none.
	AverageTuition(ctx context.Context, bootcampID string) (*float64, error)
}

// ReviewRepository is the store adapter for reviews. The one-review-per
// (user, bootcamp) constraint is enforced here and surfaced as Conflict.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	List(ctx context.Context, bootcampID string, p ListParams) ([]entity.Review, int, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
	// AverageRating returns the mean rating across a bootcamp's
	// reviews, or nil when it has none.
	AverageRating(ctx context.Context, bootcampID string) (*float64, error)
}
