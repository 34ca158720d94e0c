package application

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range f.users {
		if ex.Email == u.Email {
			return apperr.New(apperr.Conflict, "email already registered")
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (f *fakeUserRepo) GetByResetToken(_ context.Context, hashed string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ResetPasswordToken != "" && u.ResetPasswordToken == hashed {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (f *fakeUserRepo) List(_ context.Context, _ repository.ListParams) ([]entity.User, int, error) {
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, len(out), nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	delete(f.users, id)
	return nil
}

type fakeBootcampRepo struct {
	bootcamps map[string]*entity.Bootcamp

	avgCostErr bool

	radiusLng, radiusLat, radius float64
}

func newFakeBootcampRepo() *fakeBootcampRepo {
	return &fakeBootcampRepo{bootcamps: map[string]*entity.Bootcamp{}}
}

func (f *fakeBootcampRepo) Create(_ context.Context, b *entity.Bootcamp) error {
	for _, ex := range f.bootcamps {
		if ex.Name == b.Name {
			return apperr.New(apperr.Conflict, "bootcamp name already taken")
		}
	}
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	f.bootcamps[b.ID] = &cp
	return nil
}

func (f *fakeBootcampRepo) GetByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	b, ok := f.bootcamps[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "bootcamp not found")
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBootcampRepo) GetByOwner(_ context.Context, userID string) (*entity.Bootcamp, error) {
	for _, b := range f.bootcamps {
		if b.UserID == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "bootcamp not found")
}

func (f *fakeBootcampRepo) List(_ context.Context, _ repository.ListParams) ([]entity.Bootcamp, int, error) {
	out := make([]entity.Bootcamp, 0, len(f.bootcamps))
	for _, b := range f.bootcamps {
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (f *fakeBootcampRepo) Update(_ context.Context, b *entity.Bootcamp) error {
	if _, ok := f.bootcamps[b.ID]; !ok {
		return apperr.New(apperr.NotFound, "bootcamp not found")
	}
	cp := *b
	f.bootcamps[b.ID] = &cp
	return nil
}

func (f *fakeBootcampRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.bootcamps[id]; !ok {
		return apperr.New(apperr.NotFound, "bootcamp not found")
	}
	delete(f.bootcamps, id)
	return nil
}

func (f *fakeBootcampRepo) WithinRadius(_ context.Context, lng, lat, radius float64) ([]entity.Bootcamp, error) {
	f.radiusLng, f.radiusLat, f.radius = lng, lat, radius
	return nil, nil
}

func (f *fakeBootcampRepo) UpdateAverageRating(_ context.Context, id string, avg *float64) error {
	b, ok := f.bootcamps[id]
	if !ok {
		return apperr.New(apperr.NotFound, "bootcamp not found")
	}
	b.AverageRating = avg
	return nil
}

func (f *fakeBootcampRepo) UpdateAverageCost(_ context.Context, id string, avg *float64) error {
	if f.avgCostErr {
		return errors.New("store offline")
	}
	b, ok := f.bootcamps[id]
	if !ok {
		return apperr.New(apperr.NotFound, "bootcamp not found")
	}
	b.AverageCost = avg
	return nil
}

func (f *fakeBootcampRepo) UpdatePhoto(_ context.Context, id, filename string) error {
	b, ok := f.bootcamps[id]
	if !ok {
		return apperr.New(apperr.NotFound, "bootcamp not found")
	}
	b.Photo = filename
	return nil
}

type fakeCourseRepo struct {
	courses map[string]*entity.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[string]*entity.Course{}}
}

func (f *fakeCourseRepo) Create(_ context.Context, c *entity.Course) error {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id string) (*entity.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "course not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseRepo) List(_ context.Context, bootcampID string, _ repository.ListParams) ([]entity.Course, int, error) {
	var out []entity.Course
	for _, c := range f.courses {
		if bootcampID == "" || c.BootcampID == bootcampID {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (f *fakeCourseRepo) Update(_ context.Context, c *entity.Course) error {
	if _, ok := f.courses[c.ID]; !ok {
		return apperr.New(apperr.NotFound, "course not found")
	}
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.courses[id]; !ok {
		return apperr.New(apperr.NotFound, "course not found")
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) DeleteByBootcamp(_ context.Context, bootcampID string) (int64, error) {
	var n int64
	for id, c := range f.courses {
		if c.BootcampID == bootcampID {
			delete(f.courses, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeCourseRepo) AverageTuition(_ context.Context, bootcampID string) (*float64, error) {
	var sum float64
	var n int
	for _, c := range f.courses {
		if c.BootcampID == bootcampID {
			sum += c.Tuition
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	return &avg, nil
}

type fakeReviewRepo struct {
	reviews map[string]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*entity.Review{}}
}

func (f *fakeReviewRepo) Create(_ context.Context, r *entity.Review) error {
	for _, ex := range f.reviews {
		if ex.BootcampID == r.BootcampID && ex.UserID == r.UserID {
			return apperr.New(apperr.Conflict, "review already submitted")
		}
	}
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	f.reviews[r.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "review not found")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewRepo) List(_ context.Context, bootcampID string, _ repository.ListParams) ([]entity.Review, int, error) {
	var out []entity.Review
	for _, r := range f.reviews {
		if bootcampID == "" || r.BootcampID == bootcampID {
			out = append(out, *r)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviewRepo) Update(_ context.Context, r *entity.Review) error {
	if _, ok := f.reviews[r.ID]; !ok {
		return apperr.New(apperr.NotFound, "review not found")
	}
	cp := *r
	f.reviews[r.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.reviews[id]; !ok {
		return apperr.New(apperr.NotFound, "review not found")
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) AverageRating(_ context.Context, bootcampID string) (*float64, error) {
	var sum float64
	var n int
	for _, r := range f.reviews {
		if r.BootcampID == bootcampID {
			sum += float64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	return &avg, nil
}

type fakeGeocoder struct {
	loc   entity.Location
	calls int
	err   error
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (*entity.Location, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	loc := f.loc
	loc.FormattedAddress = address
	return &loc, nil
}

type fakePhotoStore struct {
	saved map[string][]byte
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{saved: map[string][]byte{}}
}

func (f *fakePhotoStore) Save(_ context.Context, filename, _ string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.saved[filename] = b
	return nil
}

type fakeMail struct {
	jobs []any
	err  error
}

func (f *fakeMail) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}

var (
	_ repository.UserRepository     = (*fakeUserRepo)(nil)
	_ repository.BootcampRepository = (*fakeBootcampRepo)(nil)
	_ repository.CourseRepository   = (*fakeCourseRepo)(nil)
	_ repository.ReviewRepository   = (*fakeReviewRepo)(nil)
)
